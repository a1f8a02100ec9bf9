// Package schema loads copybook schemas from YAML or JSONC files and
// describes them as WIT record types.
//
// A schema file lists entries in wire order:
//
//	name: employee
//	fields:
//	  - name: id
//	    type: X
//	    length: 10
//	  - name: age
//	    type: "9"
//	    length: 4
//	    usage: comp
//	  - name: balance
//	    type: V
//	    length: 7
//	    scale: 2
//	    signed: true
//	    usage: comp-3
//	  - name: phone
//	    occurs: 2
//	    fields:
//	      - name: number
//	        type: X
//	        length: 12
//
// The type key accepts the picture letters X, 9, V and "." or the long
// names alphanumeric, numeric, decimal and explicit. An entry with occurs
// is expanded into occurs consecutive entries named name[0], name[1], ...
//
// JSONC files carry the same keys and may contain comments and trailing
// commas.
package schema

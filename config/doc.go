// Package config loads a YAML file describing tree settings and a script of
// operations to replay against a tree.
//
//	tree:
//	  prune_threshold: 0.4
//	  prune_streak: 2
//	  toggle_on_measure: true
//	  toggle_on_update: true
//	signal:
//	  min_quality: 0.5
//	script:
//	  - {op: insert, key: 1, value: "A", quality: 0.9, polarity: "+"}
//	  - {op: measure, key: 1, quality: 0.2, polarity: "-"}
//	  - {op: delete, key: 1}
//
// Load(path) reads the file, applies defaults (the tree's DefaultConfig and
// min_quality 0.5) and validates ranges, op names and polarities. Apply
// replays the script; operations on absent keys are logged and skipped.
package config

// Package config loads the forage-ui configuration file.
//
// # Location
//
// The file is TOML. It is read from --config, else $FORAGE_UI_CONFIG, else
// $XDG_CONFIG_HOME/forage-ui/config.toml (~/.config when XDG_CONFIG_HOME is
// unset). A missing default file is not an error; the defaults apply.
//
// # Format
//
//	interrupt = "exit"        # exit | continue | ignore
//	color = "auto"            # auto | always | never
//	non_interactive = false
//	data_dir = "tables"       # relative to the config file
//
//	[table]
//	border = "rounded"        # rounded | square | double | ascii
//	padding = 1
//	header_separator = true
//	viewport_size = 10
//	page_size = 10
//
//	[spinner]
//	style = "dot"             # dot | line | minidot | points | pulse | globe | jump | meter
//	interval_ms = 0           # 0 keeps the style's own cadence
//
// Unknown keys do not fail loading; they are collected in Undecoded so the
// CLI can warn about them.
//
// # Data Sets
//
// ResolveData joins a data set name onto data_dir with
// filepath-securejoin, so names like "../../etc/passwd" cannot escape it.
package config

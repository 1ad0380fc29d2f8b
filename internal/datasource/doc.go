// Package datasource loads table data from files or command output and
// turns changes into live table updates.
//
// # File Format
//
// JSON, TOML and YAML share one schema:
//
//	{
//	  "columns": [
//	    {"title": "ID", "width": "auto"},
//	    {"title": "Name", "width": "flex:4:20"},
//	    {"title": "Role", "align": "center"}
//	  ],
//	  "rows": [
//	    {"id": "u1", "cells": ["1", "Alice", "admin"]}
//	  ]
//	}
//
// width is one of auto, N, fixed:N, flex:MIN or flex:MIN:MAX. align is
// left, center or right. A row id is optional and identifies the row
// across refreshes.
//
// # Producers
//
// CommandLoader runs a command and decodes its standard output; it can be
// handed to a Poller like any other Loader. Poller reloads on a fixed
// interval. Watcher reloads when the file
// changes on disk. Both deliver live.Update values that live.Consume
// applies to a selectable table, and both skip reloads whose data did not
// change.
package datasource

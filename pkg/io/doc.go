// Package io provides JSON import and export for mind map documents.
//
// # JSON Format
//
// The format is the one the browser editor persists:
//
//	{
//	  "nodes": [
//	    {"id": "root", "title": "Master The Brain", "color": 9,
//	     "x": 0, "y": 0, "parentId": null, "collapsed": false, "locked": false},
//	    {"id": "1", "title": "Sleep", "color": 5,
//	     "x": 350, "y": 0, "parentId": "root", "collapsed": false, "locked": false}
//	  ],
//	  "nextId": 2,
//	  "links": [{"from": "1", "to": "root", "label": "feeds"}]
//	}
//
// The "nodes" array is required. Everything else is optional: a missing
// nextId is derived from the numeric ids, missing flags default to false and
// a missing color becomes the default palette entry. Ids may be strings or
// numbers. Optional "view" and "selectedId" fields carry editor state.
//
// # Validation
//
// Colors outside 1..12 are rejected with INVALID_COLOR and unknown shapes
// with INVALID_SHAPE. Structural problems (dangling parents, duplicate ids)
// are tolerated; the document model treats the affected nodes as roots.
//
// # Round Trip
//
// Measured sizes are never written. Reading what [WriteJSON] produced yields
// the same visible node set and the same links.
package io

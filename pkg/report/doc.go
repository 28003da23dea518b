// Package report serializes resolution runs as JSON.
//
// A [Report] captures everything one `bumpline resolve` pass learned
// about a workspace: per package the resolved state, the release it was
// measured against, and the pending update with its qualifying commits.
// Reports are plain data, so a run can be exported once and consumed by
// other tooling, or re-rendered as a changelog, without re-querying git.
//
// # JSON Format
//
//	{
//	  "root": ".",
//	  "generated_at": "2025-11-08T10:42:00Z",
//	  "packages": [
//	    {
//	      "dir": "pkgs/parser",
//	      "module": "parser",
//	      "name": "@acme/parser",
//	      "version": "1.2.4-pre.1+9f86d08",
//	      "state": "calculated",
//	      "release": {"version": "1.2.3", "tag": "parser@1.2.3"},
//	      "update": {
//	        "type": "patch",
//	        "version": "1.2.4-pre.1+9f86d08",
//	        "changes": [
//	          {
//	            "hash": "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b",
//	            "short": "9f86d08",
//	            "type": "fix",
//	            "scopes": ["parser"],
//	            "breaking": false,
//	            "description": "handle empty input"
//	          }
//	        ]
//	      }
//	    }
//	  ]
//	}
//
// Packages that failed to resolve carry an "error" string instead of
// release and update objects.
//
// Use [WriteJSON] and [ReadJSON] against streams, or [ExportJSON] and
// [ImportJSON] against file paths. Round-trips are lossless.
package report

package errors

import "strings"

// authMarkers are substrings git prints on credential or permission failures.
var authMarkers = []string{
	"authentication failed",
	"could not read username",
	"could not read password",
	"permission denied",
	"publickey",
	"access denied",
	"403",
}

// conflictMarkers are substrings git prints when a pull cannot be reconciled.
var conflictMarkers = []string{
	"merge conflict",
	"automatic merge failed",
	"fix conflicts",
	"needs merge",
	"would be overwritten by merge",
}

func isAuthFailure(stderr string) bool {
	return containsAny(strings.ToLower(stderr), authMarkers)
}

func isMergeConflict(stderr string) bool {
	return containsAny(strings.ToLower(stderr), conflictMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

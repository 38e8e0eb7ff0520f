package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent board template loads. Several ready intents can race at game
// start; a centralized singleflight.Group ensures only one repository fetch
// runs per board name while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// BoardGroup deduplicates board template fetches keyed by board name.
var BoardGroup singleflight.Group

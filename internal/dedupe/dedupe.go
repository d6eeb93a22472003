// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent enhancement requests. A centralized singleflight.Group ensures
// that only one generation job runs for a given fusion key while other
// callers wait for the result.
package dedupe

import "golang.org/x/sync/singleflight"

// EnhanceGroup deduplicates name/lore enhancement requests keyed by the
// canonical fusion key (see keys.FusionKey).
var EnhanceGroup singleflight.Group

// Package namegen resolves optionally AI-enhanced names and lore for fusion
// products. The procedural name from the assembly step is always computed
// first; enhancement only replaces it when the provider call succeeds, so
// fusion never fails because the provider is down.
package namegen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/dedupe"
	"github.com/petforge/petforge/internal/keys"
	"github.com/petforge/petforge/internal/logging"
	"github.com/petforge/petforge/internal/openaiclient"
	"github.com/petforge/petforge/internal/storage"
)

// Enhanced is the result of one enhancement lookup.
type Enhanced struct {
	Name string
	Lore string
	// Source is "db" when the cached row was reused, "openai" when freshly
	// generated.
	Source string
}

// GetOrCreateEnhanced checks the repository cache for an enhanced name for
// the given fusion inputs; on a miss it generates one via OpenAI and stores
// it. Concurrent requests for the same fusion key share a single generation
// call. The returned error means enhancement is unavailable and the caller
// should keep the procedural name.
func GetOrCreateEnhanced(repo storage.Repository, parentNames []string, stoneTiers []int, rarity string) (Enhanced, error) {
	fusionKey := keys.FusionKey(parentNames, stoneTiers)

	if gn, err := repo.GetGeneratedNameByFusionKey(fusionKey); err == nil && gn != nil && gn.GeneratedName != "" {
		logging.Info("fusion-name cache hit", logging.Fields{constants.LogFieldKey: fusionKey, constants.LogFieldName: gn.GeneratedName, constants.LogFieldSource: "db"})
		return Enhanced{Name: gn.GeneratedName, Lore: gn.GeneratedLore, Source: "db"}, nil
	}

	ch := dedupe.EnhanceGroup.DoChan(fusionKey, func() (interface{}, error) {
		// Re-check the cache inside the singleflight function in case
		// another goroutine saved the row before we got here.
		if gn, err := repo.GetGeneratedNameByFusionKey(fusionKey); err == nil && gn != nil && gn.GeneratedName != "" {
			return Enhanced{Name: gn.GeneratedName, Lore: gn.GeneratedLore, Source: "db"}, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		name, err := openaiclient.GenerateFusionName(ctx, parentNames, rarity)
		if err != nil {
			logging.Error("fusion-name generation failed", err, logging.Fields{constants.LogFieldKey: fusionKey})
			return Enhanced{}, err
		}
		if strings.TrimSpace(name) == "" {
			return Enhanced{}, fmt.Errorf("openai returned empty name")
		}

		// Lore is best-effort; an empty lore with a good name is still a
		// usable enhancement.
		lore, err := openaiclient.GenerateFusionLore(ctx, parentNames, rarity)
		if err != nil {
			logging.Warn("fusion-lore generation failed", err, logging.Fields{constants.LogFieldKey: fusionKey})
			lore = ""
		}

		if err := repo.SaveGeneratedName(fusionKey, name, lore); err != nil {
			logging.Error("fusion-name failed to save generated name", err, logging.Fields{constants.LogFieldKey: fusionKey})
		}
		logging.Info("fusion-name generated", logging.Fields{constants.LogFieldKey: fusionKey, constants.LogFieldName: name})
		return Enhanced{Name: name, Lore: lore, Source: "openai"}, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return Enhanced{}, r.Err
		}
		if e, ok := r.Val.(Enhanced); ok {
			return e, nil
		}
		return Enhanced{}, fmt.Errorf("unexpected result type from singleflight")
	case <-time.After(60 * time.Second):
		logging.Error("fusion-name generation timed out", fmt.Errorf("timeout"), logging.Fields{constants.LogFieldKey: fusionKey})
		return Enhanced{}, fmt.Errorf("timed out waiting for name generation")
	}
}

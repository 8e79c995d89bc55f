package metadata

// buildTiers converts announce data into the ordered tier list. A non-empty
// "announce-list" is authoritative: tier order is preserved exactly as
// declared, while URLs inside each tier are shuffled once to spread load
// across mirror trackers. Without it, the single "announce" URL becomes the
// sole one-element tier; a torrent with neither is valid and trackerless.
func buildTiers(announce string, announceList []interface{}, shuffle func(n int, swap func(i, j int))) []Tier {
	if len(announceList) == 0 {
		if announce == "" {
			return nil
		}

		return []Tier{{announce}}
	}

	tiers := make([]Tier, 0, len(announceList))
	for _, entry := range announceList {
		urls, ok := entry.([]interface{})
		if !ok {
			continue
		}

		tier := make(Tier, 0, len(urls))
		for _, u := range urls {
			if s, ok := u.(string); ok {
				tier = append(tier, s)
			}
		}
		if len(tier) == 0 {
			continue
		}

		shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
		tiers = append(tiers, tier)
	}

	return tiers
}

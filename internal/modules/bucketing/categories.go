package bucketing

import "sort"

// Unknown is the category used for missing or empty values
const Unknown = "Unknown"

// CategoryCount is one row of a categorical tally
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TallyCategories groups values by exact string, counting nil and empty
// values under Unknown. The result is sorted by count descending with ties
// kept in first-seen order, then truncated to topN. topN <= 0 keeps every
// category.
func TallyCategories(categories []*string, topN int) []CategoryCount {
	index := make(map[string]int)
	var tally []CategoryCount

	for _, c := range categories {
		key := Unknown
		if c != nil && *c != "" {
			key = *c
		}

		if i, ok := index[key]; ok {
			tally[i].Count++
			continue
		}
		index[key] = len(tally)
		tally = append(tally, CategoryCount{Category: key, Count: 1})
	}

	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].Count > tally[j].Count
	})

	if topN > 0 && len(tally) > topN {
		tally = tally[:topN]
	}
	if tally == nil {
		return []CategoryCount{}
	}

	return tally
}

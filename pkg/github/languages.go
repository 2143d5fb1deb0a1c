package github

import "sort"

const maxLanguageStats = 10

// languageStats ranks language usage across the given repositories.
//
// When a repository carries per-language byte sizes (GraphQL path) those bytes
// are the weight; otherwise each repository contributes one unit to its
// primary language (REST path). The top 10 languages by weight are returned
// with integer percentages. Independent rounding can leave the percentages
// summing to 99 or 101, so the residual is folded into the top-ranked entry;
// a non-empty result always sums to exactly 100.
func languageStats(repos []Repository) []LanguageStat {
	type bucket struct {
		weight int
		color  string
	}
	weights := make(map[string]*bucket)

	for _, repo := range repos {
		if len(repo.Languages) > 0 {
			for _, slice := range repo.Languages {
				b, ok := weights[slice.Name]
				if !ok {
					b = &bucket{color: slice.Color}
					weights[slice.Name] = b
				}
				b.weight += slice.Size
			}
		} else if repo.PrimaryLanguage != nil {
			b, ok := weights[repo.PrimaryLanguage.Name]
			if !ok {
				b = &bucket{color: repo.PrimaryLanguage.Color}
				weights[repo.PrimaryLanguage.Name] = b
			}
			b.weight++
		}
	}

	total := 0
	for _, b := range weights {
		total += b.weight
	}
	if total == 0 {
		return nil
	}

	stats := make([]LanguageStat, 0, len(weights))
	for name, b := range weights {
		stats = append(stats, LanguageStat{
			Name:       name,
			Color:      b.color,
			Percentage: roundPercent(b.weight, total),
			Size:       b.weight,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Size != stats[j].Size {
			return stats[i].Size > stats[j].Size
		}
		return stats[i].Name < stats[j].Name
	})
	if len(stats) > maxLanguageStats {
		stats = stats[:maxLanguageStats]
	}

	sum := 0
	for _, s := range stats {
		sum += s.Percentage
	}
	if sum != 100 {
		stats[0].Percentage += 100 - sum
	}
	return stats
}

// roundPercent computes round(weight/total*100) without floating point drift.
func roundPercent(weight, total int) int {
	return (weight*100 + total/2) / total
}

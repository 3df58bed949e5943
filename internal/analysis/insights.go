package analysis

// deriveInsights selects the argmax/argmin groups by mean sentiment.
// It is a pure function of the grouped means; ties keep the
// first-encountered group because replacement requires a strictly
// better mean.
func deriveInsights(categories, regions, platforms []GroupMean) Insights {
	return Insights{
		MostPositiveCategory: argMax(categories),
		MostNegativeCategory: argMin(categories),
		MostPositiveRegion:   argMax(regions),
		MostPositivePlatform: argMax(platforms),
	}
}

func argMax(groups []GroupMean) Insight {
	if len(groups) == 0 {
		return Insight{}
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.Mean > best.Mean {
			best = g
		}
	}
	return Insight{Name: best.Name, Score: best.Mean}
}

func argMin(groups []GroupMean) Insight {
	if len(groups) == 0 {
		return Insight{}
	}
	worst := groups[0]
	for _, g := range groups[1:] {
		if g.Mean < worst.Mean {
			worst = g
		}
	}
	return Insight{Name: worst.Name, Score: worst.Mean}
}

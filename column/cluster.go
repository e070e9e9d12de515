package column

import "sort"

// cluster is a 1-D group of fragment left coordinates.
type cluster struct {
	center    float64
	sum       float64
	count     int
	baselines map[float64]bool
}

func (c *cluster) add(left, baseline float64) {
	c.sum += left
	c.count++
	c.center = c.sum / float64(c.count)
	c.baselines[baseline] = true
}

// clusterLefts implements §4.B step 2: cluster fragment left coordinates
// with the configured tolerance, keeping only clusters with enough vertical
// extent to count as a real column start.
func clusterLefts(frags []Fragment, cfg Config) []float64 {
	var candidates []Fragment
	for _, f := range frags {
		if !f.Excluded {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Left < candidates[j].Left })

	var clusters []*cluster
	cur := &cluster{baselines: map[float64]bool{}}
	cur.add(candidates[0].Left, candidates[0].Baseline())
	clusters = append(clusters, cur)
	for _, f := range candidates[1:] {
		if f.Left-cur.center <= cfg.ClusterTolerance {
			cur.add(f.Left, f.Baseline())
			continue
		}
		cur = &cluster{baselines: map[float64]bool{}}
		cur.add(f.Left, f.Baseline())
		clusters = append(clusters, cur)
	}

	var starts []float64
	for _, c := range clusters {
		if len(c.baselines) >= cfg.MinClusterBaselines {
			starts = append(starts, c.center)
		}
	}
	sort.Float64s(starts)
	return starts
}

// dominantClusterShare returns the fraction of fragments whose left
// coordinate falls within tolerance of the largest cluster's centre, used by
// the single-column heuristic's 80% rule.
func dominantClusterShare(frags []Fragment, cfg Config) float64 {
	var candidates []Fragment
	for _, f := range frags {
		if !f.Excluded {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return 1
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Left < candidates[j].Left })

	var clusters []*cluster
	cur := &cluster{baselines: map[float64]bool{}}
	cur.add(candidates[0].Left, candidates[0].Baseline())
	clusters = append(clusters, cur)
	for _, f := range candidates[1:] {
		if f.Left-cur.center <= cfg.ClusterTolerance {
			cur.add(f.Left, f.Baseline())
			continue
		}
		cur = &cluster{baselines: map[float64]bool{}}
		cur.add(f.Left, f.Baseline())
		clusters = append(clusters, cur)
	}

	var dominant *cluster
	for _, c := range clusters {
		if dominant == nil || c.count > dominant.count {
			dominant = c
		}
	}
	within := 0
	for _, f := range candidates {
		if absf(f.Left-dominant.center) <= cfg.ClusterTolerance {
			within++
		}
	}
	return float64(within) / float64(len(candidates))
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

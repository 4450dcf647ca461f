package engine

// AgeGroupLabels is the fixed presentation order of the age buckets.
var AgeGroupLabels = []string{"18-25", "26-35", "36-45", "46-55", "56-65", "65+"}

// ageGroupEdges are right-inclusive upper bounds; the lower bound of the first bucket is 0 (exclusive).
var ageGroupEdges = []float64{25, 35, 45, 55, 65, 100}

// AgeGroup buckets an age. Ages outside (0, 100] have no group.
func AgeGroup(age float64) (string, bool) {
	if age <= 0 || age > ageGroupEdges[len(ageGroupEdges)-1] {
		return "", false
	}
	for i, edge := range ageGroupEdges {
		if age <= edge {
			return AgeGroupLabels[i], true
		}
	}
	return "", false
}

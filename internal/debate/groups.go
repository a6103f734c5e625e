package debate

import "github.com/smhong/meddebate/pkg/models"

// FormGroups arranges the selected specialists into the circular overlap
// structure: group i pairs specialist i with specialist (i+1) mod n, so
// every specialist deliberates in exactly two adjacent groups. The overlap
// forces each specialist's view to be cross-checked by both neighbors
// instead of deliberating in isolation.
//
// A single specialist yields one self-paired group; an empty selection
// yields no groups.
func FormGroups(specialists []models.SpecialistRole) []models.SpecialistGroup {
	n := len(specialists)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []models.SpecialistGroup{{First: specialists[0], Second: specialists[0]}}
	}

	groups := make([]models.SpecialistGroup, n)
	for i := 0; i < n; i++ {
		groups[i] = models.SpecialistGroup{
			First:  specialists[i],
			Second: specialists[(i+1)%n],
		}
	}
	return groups
}

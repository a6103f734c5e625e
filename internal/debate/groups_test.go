package debate

import (
	"testing"

	"github.com/smhong/meddebate/pkg/models"
)

func TestFormGroups(t *testing.T) {
	tests := []struct {
		name        string
		specialists []models.SpecialistRole
		want        []models.SpecialistGroup
	}{
		{
			name:        "empty selection",
			specialists: nil,
			want:        nil,
		},
		{
			name:        "single specialist self-pairs",
			specialists: []models.SpecialistRole{"neurology"},
			want: []models.SpecialistGroup{
				{First: "neurology", Second: "neurology"},
			},
		},
		{
			name:        "two specialists form mirrored pairs",
			specialists: []models.SpecialistRole{"neurology", "cardiology"},
			want: []models.SpecialistGroup{
				{First: "neurology", Second: "cardiology"},
				{First: "cardiology", Second: "neurology"},
			},
		},
		{
			name:        "three specialists wrap around",
			specialists: []models.SpecialistRole{"a", "b", "c"},
			want: []models.SpecialistGroup{
				{First: "a", Second: "b"},
				{First: "b", Second: "c"},
				{First: "c", Second: "a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormGroups(tt.specialists)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d groups, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("group %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormGroups_EverySpecialistInTwoGroups(t *testing.T) {
	specialists := []models.SpecialistRole{"a", "b", "c", "d", "e"}
	groups := FormGroups(specialists)

	counts := make(map[models.SpecialistRole]int)
	for _, g := range groups {
		counts[g.First]++
		counts[g.Second]++
	}
	for _, s := range specialists {
		if counts[s] != 2 {
			t.Errorf("specialist %s appears in %d group slots, want 2", s, counts[s])
		}
	}
}

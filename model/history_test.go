package model

import "testing"

func TestIsStagnant(t *testing.T) {
	tests := []struct {
		name  string
		seed  func(g *Grid)
		steps int
		want  bool
	}{
		{
			name:  "block",
			seed:  func(g *Grid) { g.AddBlock(3, 3) },
			steps: 4,
			want:  true,
		},
		{
			name:  "blinker",
			seed:  func(g *Grid) { g.AddOscillator(4, 3) },
			steps: 4,
			want:  true,
		},
		{
			name:  "empty",
			seed:  func(*Grid) {},
			steps: 4,
			want:  true,
		},
		{
			name:  "glider",
			seed:  func(g *Grid) { g.AddGlider(1, 1) },
			steps: 4,
			want:  false,
		},
		{
			name:  "too little history",
			seed:  func(g *Grid) { g.AddBlock(3, 3) },
			steps: 1,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, 10, 10)
			tt.seed(g)
			for range tt.steps {
				g.UpdateHistory()
				g.Update()
			}
			if got := g.IsStagnant(); got != tt.want {
				t.Fatalf("IsStagnant() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestUpdateHistoryKeepsRecentStates(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	g.AddGlider(0, 0)
	for range historySize * 2 {
		g.UpdateHistory()
		g.Update()
	}
	if len(g.history) != historySize {
		t.Fatalf("history length = %d, expected %d", len(g.history), historySize)
	}
}

package main

import (
	"testing"

	"tilecaster/internal/game"
	"tilecaster/internal/maps"
)

func TestCameraPose(t *testing.T) {
	w, err := game.NewWorld(maps.DefaultMap(), nil, 64, 8)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		x, y, angle  float64
		wantX, wantY float64
		wantAngle    float64
		wantErr      bool
	}{
		{"spawn", -1, -1, -1, 2.5, 2.5, 0, false},
		{"override", 5.25, 6.75, 90, 5.25, 6.75, 90, false},
		{"partial", 3, -1, 400, 3, 2.5, 40, false},
		{"outside", 99, 2, 0, 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pose, err := cameraPose(w, tt.x, tt.y, tt.angle)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if pose.Position.X != tt.wantX || pose.Position.Y != tt.wantY || pose.Angle != tt.wantAngle {
				t.Errorf("pose = %+v", pose)
			}
		})
	}
}

package astro

import (
	"testing"
	"time"
)

func TestSunPosition(t *testing.T) {
	tests := []struct {
		name               string
		time               time.Time
		raMin, raMax       float64
		decMin, decMax     float64
		distMin, distMax   float64
	}{
		{
			name:  "March equinox 2017",
			time:  time.Date(2017, 3, 20, 10, 29, 0, 0, time.UTC),
			raMin: 359.5, raMax: 0.5,
			decMin: -0.2, decMax: 0.2,
			distMin: 0.99, distMax: 1.0,
		},
		{
			name:  "June solstice 2017",
			time:  time.Date(2017, 6, 21, 4, 24, 0, 0, time.UTC),
			raMin: 89.5, raMax: 90.5,
			decMin: 23.3, decMax: 23.5,
			distMin: 1.015, distMax: 1.017,
		},
		{
			name:  "December solstice 2017",
			time:  time.Date(2017, 12, 21, 16, 28, 0, 0, time.UTC),
			raMin: 269.5, raMax: 270.5,
			decMin: -23.5, decMax: -23.3,
			distMin: 0.983, distMax: 0.985,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunPosition(tt.time)

			var raOK bool
			if tt.raMin > tt.raMax {
				raOK = got.RAdeg >= tt.raMin || got.RAdeg <= tt.raMax
			} else {
				raOK = got.RAdeg >= tt.raMin && got.RAdeg <= tt.raMax
			}
			if !raOK {
				t.Errorf("SunPosition() RA = %.3f, want in [%v, %v]", got.RAdeg, tt.raMin, tt.raMax)
			}
			if got.DecDeg < tt.decMin || got.DecDeg > tt.decMax {
				t.Errorf("SunPosition() Dec = %.3f, want in [%v, %v]", got.DecDeg, tt.decMin, tt.decMax)
			}
			if got.DistAU < tt.distMin || got.DistAU > tt.distMax {
				t.Errorf("SunPosition() distance = %.4f AU, want in [%v, %v]", got.DistAU, tt.distMin, tt.distMax)
			}
		})
	}
}

package usecase

import (
	"fmt"
	"time"
)

// The practitioner reads submission times in her own timezone, not the
// visitor's.
var parisLocation = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.FixedZone("CET", 3600)
	}
	return loc
}()

var frenchDays = [...]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// formatParisTimestamp renders e.g. "lundi 1 septembre 2026 à 15h04".
func formatParisTimestamp(t time.Time) string {
	t = t.In(parisLocation)
	return fmt.Sprintf("%s %d %s %d à %02dh%02d",
		frenchDays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year(),
		t.Hour(), t.Minute(),
	)
}

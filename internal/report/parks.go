package report

import "fmt"

// parks maps a Statcast home-team code to its ballpark and city.
var parks = map[string][2]string{
	"SEA": {"T-Mobile Park", "Seattle"},
	"SF":  {"Oracle Park", "San Francisco"},
	"LAD": {"Dodger Stadium", "Los Angeles"},
	"NYY": {"Yankee Stadium", "New York"},
	"BOS": {"Fenway Park", "Boston"},
	"CHC": {"Wrigley Field", "Chicago"},
	"ATL": {"Truist Park", "Atlanta"},
	"HOU": {"Minute Maid Park", "Houston"},
	"TEX": {"Globe Life Field", "Arlington"},
	"LAA": {"Angel Stadium", "Anaheim"},
	"OAK": {"Oakland Coliseum", "Oakland"},
	"SD":  {"Petco Park", "San Diego"},
	"ARI": {"Chase Field", "Phoenix"},
	"COL": {"Coors Field", "Denver"},
	"MIL": {"American Family Field", "Milwaukee"},
	"MIN": {"Target Field", "Minneapolis"},
	"CWS": {"Guaranteed Rate Field", "Chicago"},
	"DET": {"Comerica Park", "Detroit"},
	"CLE": {"Progressive Field", "Cleveland"},
	"KC":  {"Kauffman Stadium", "Kansas City"},
	"STL": {"Busch Stadium", "St. Louis"},
	"CIN": {"Great American Ball Park", "Cincinnati"},
	"PIT": {"PNC Park", "Pittsburgh"},
	"NYM": {"Citi Field", "New York"},
	"PHI": {"Citizens Bank Park", "Philadelphia"},
	"MIA": {"loanDepot park", "Miami"},
	"WSH": {"Nationals Park", "Washington"},
	"TB":  {"Tropicana Field", "St. Petersburg"},
	"BAL": {"Oriole Park", "Baltimore"},
	"TOR": {"Rogers Centre", "Toronto"},
}

// ParkLabel renders a park code with its stadium and city. Unknown codes
// come back unchanged.
func ParkLabel(code string) string {
	p, ok := parks[code]
	if !ok {
		return code
	}
	return fmt.Sprintf("%s – %s (%s)", code, p[0], p[1])
}

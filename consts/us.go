package consts

import "strings"

var USStateName map[string]string

func init() {
	USStateName = make(map[string]string)

	USStateName["AL"] = "Alabama"
	USStateName["AK"] = "Alaska"
	USStateName["AZ"] = "Arizona"
	USStateName["AR"] = "Arkansas"
	USStateName["CA"] = "California"
	USStateName["CO"] = "Colorado"
	USStateName["CT"] = "Connecticut"
	USStateName["DE"] = "Delaware"
	USStateName["FL"] = "Florida"
	USStateName["GA"] = "Georgia"
	USStateName["HI"] = "Hawaii"
	USStateName["ID"] = "Idaho"
	USStateName["IL"] = "Illinois"
	USStateName["IN"] = "Indiana"
	USStateName["IA"] = "Iowa"
	USStateName["KS"] = "Kansas"
	USStateName["KY"] = "Kentucky"
	USStateName["LA"] = "Louisiana"
	USStateName["ME"] = "Maine"
	USStateName["MD"] = "Maryland"
	USStateName["MA"] = "Massachusetts"
	USStateName["MI"] = "Michigan"
	USStateName["MN"] = "Minnesota"
	USStateName["MS"] = "Mississippi"
	USStateName["MO"] = "Missouri"
	USStateName["MT"] = "Montana"
	USStateName["NE"] = "Nebraska"
	USStateName["NV"] = "Nevada"
	USStateName["NH"] = "New Hampshire"
	USStateName["NJ"] = "New Jersey"
	USStateName["NM"] = "New Mexico"
	USStateName["NY"] = "New York"
	USStateName["NC"] = "North Carolina"
	USStateName["ND"] = "North Dakota"
	USStateName["OH"] = "Ohio"
	USStateName["OK"] = "Oklahoma"
	USStateName["OR"] = "Oregon"
	USStateName["PA"] = "Pennsylvania"
	USStateName["RI"] = "Rhode Island"
	USStateName["SC"] = "South Carolina"
	USStateName["SD"] = "South Dakota"
	USStateName["TN"] = "Tennessee"
	USStateName["TX"] = "Texas"
	USStateName["UT"] = "Utah"
	USStateName["VT"] = "Vermont"
	USStateName["VA"] = "Virginia"
	USStateName["WA"] = "Washington"
	USStateName["WV"] = "West Virginia"
	USStateName["WI"] = "Wisconsin"
	USStateName["WY"] = "Wyoming"
	USStateName["DC"] = "District of Columbia"
	USStateName["PR"] = "Puerto Rico"
}

// StateName - convert a 2-letter abbreviation into the full state name used
// by Socrata geography filters. Inputs that are not known abbreviations are
// returned unchanged since callers sometimes already hold a full name.
func StateName(abbr string) string {
	key := strings.ToUpper(strings.TrimSpace(abbr))
	if name, ok := USStateName[key]; ok {
		return name
	}
	return abbr
}

// Package reference holds the fixed country and industry vocabularies the
// service understands. Both lists are built once at package init and never
// mutated; every accessor hands out a copy so callers cannot corrupt them.
//
// Order matters. The query interpreter reports matches in list order and
// truncates, so earlier entries win ties.
package reference

// Region groups countries for the listing endpoint.
type Region string

const (
	Africa   Region = "africa"
	Asia     Region = "asia"
	Europe   Region = "europe"
	Americas Region = "americas"
	Pacific  Region = "pacific"
)

// AllRegions returns every region in display order.
func AllRegions() []Region {
	return []Region{Africa, Asia, Europe, Americas, Pacific}
}

// Country is one entry of the country vocabulary. Aliases are extra
// lower-case terms (adjective forms mostly) that also select the country.
type Country struct {
	Name    string
	Region  Region
	Aliases []string
}

// countries is the canonical list. "UK" and "USA" are deliberately separate
// entries next to their long forms; a query mentioning either form matches.
var countries = []Country{
	// Major markets
	{Name: "Germany", Region: Europe, Aliases: []string{"german"}},
	{Name: "Japan", Region: Asia},
	{Name: "United Kingdom", Region: Europe, Aliases: []string{"british", "britain"}},
	{Name: "UK", Region: Europe},
	{Name: "France", Region: Europe, Aliases: []string{"french"}},
	{Name: "Canada", Region: Americas, Aliases: []string{"canadian"}},
	{Name: "Australia", Region: Pacific},
	{Name: "Brazil", Region: Americas},
	{Name: "India", Region: Asia},
	{Name: "China", Region: Asia, Aliases: []string{"chinese"}},
	{Name: "South Korea", Region: Asia},
	{Name: "Italy", Region: Europe, Aliases: []string{"italian"}},
	{Name: "Spain", Region: Europe, Aliases: []string{"spanish"}},
	{Name: "Netherlands", Region: Europe, Aliases: []string{"dutch", "holland"}},
	{Name: "Sweden", Region: Europe, Aliases: []string{"swedish"}},
	{Name: "Norway", Region: Europe, Aliases: []string{"norwegian"}},
	{Name: "Denmark", Region: Europe, Aliases: []string{"danish"}},
	{Name: "Finland", Region: Europe, Aliases: []string{"finnish"}},
	{Name: "Switzerland", Region: Europe, Aliases: []string{"swiss"}},
	{Name: "Austria", Region: Europe},
	{Name: "Belgium", Region: Europe, Aliases: []string{"belgian"}},
	{Name: "Ireland", Region: Europe, Aliases: []string{"irish"}},
	{Name: "New Zealand", Region: Pacific},
	{Name: "Singapore", Region: Asia},
	{Name: "Hong Kong", Region: Asia},
	{Name: "United States", Region: Americas},
	{Name: "USA", Region: Americas},
	{Name: "Mexico", Region: Americas, Aliases: []string{"mexican"}},

	// Africa
	{Name: "Rwanda", Region: Africa},
	{Name: "Kenya", Region: Africa},
	{Name: "Ghana", Region: Africa},
	{Name: "Nigeria", Region: Africa},
	{Name: "Egypt", Region: Africa, Aliases: []string{"egyptian"}},
	{Name: "Morocco", Region: Africa, Aliases: []string{"moroccan"}},
	{Name: "South Africa", Region: Africa},
	{Name: "Madagascar", Region: Africa},
	{Name: "Ethiopia", Region: Africa},
	{Name: "Tanzania", Region: Africa},
	{Name: "Uganda", Region: Africa},
	{Name: "Botswana", Region: Africa},
	{Name: "Mauritius", Region: Africa},
	{Name: "Senegal", Region: Africa},
	{Name: "Mali", Region: Africa},
	{Name: "Burkina Faso", Region: Africa},
	{Name: "Niger", Region: Africa},
	{Name: "Chad", Region: Africa},
	{Name: "Sudan", Region: Africa},
	{Name: "Libya", Region: Africa},
	{Name: "Algeria", Region: Africa},
	{Name: "Tunisia", Region: Africa},
	{Name: "Cameroon", Region: Africa},
	{Name: "Ivory Coast", Region: Africa},
	{Name: "Zambia", Region: Africa},
	{Name: "Zimbabwe", Region: Africa},

	// Asia
	{Name: "Bangladesh", Region: Asia},
	{Name: "Nepal", Region: Asia},
	{Name: "Myanmar", Region: Asia},
	{Name: "Sri Lanka", Region: Asia},
	{Name: "Maldives", Region: Asia},
	{Name: "Bhutan", Region: Asia},
	{Name: "Mongolia", Region: Asia},
	{Name: "Kazakhstan", Region: Asia},
	{Name: "Uzbekistan", Region: Asia},
	{Name: "Afghanistan", Region: Asia},
	{Name: "Pakistan", Region: Asia},
	{Name: "Cambodia", Region: Asia},
	{Name: "Laos", Region: Asia},
	{Name: "Vietnam", Region: Asia},
	{Name: "Thailand", Region: Asia, Aliases: []string{"thai"}},
	{Name: "Philippines", Region: Asia, Aliases: []string{"filipino"}},
	{Name: "Indonesia", Region: Asia},
	{Name: "Malaysia", Region: Asia},
	{Name: "Brunei", Region: Asia},
	{Name: "Taiwan", Region: Asia},
	{Name: "North Korea", Region: Asia},
	{Name: "Kyrgyzstan", Region: Asia},
	{Name: "Tajikistan", Region: Asia},

	// Europe
	{Name: "Estonia", Region: Europe},
	{Name: "Latvia", Region: Europe},
	{Name: "Lithuania", Region: Europe},
	{Name: "Slovenia", Region: Europe},
	{Name: "Malta", Region: Europe},
	{Name: "Cyprus", Region: Europe},
	{Name: "Moldova", Region: Europe},
	{Name: "Albania", Region: Europe},
	{Name: "North Macedonia", Region: Europe},
	{Name: "Montenegro", Region: Europe},
	{Name: "Bosnia", Region: Europe},
	{Name: "Serbia", Region: Europe},
	{Name: "Croatia", Region: Europe},
	{Name: "Bulgaria", Region: Europe},
	{Name: "Romania", Region: Europe},
	{Name: "Hungary", Region: Europe},
	{Name: "Czech Republic", Region: Europe, Aliases: []string{"czech"}},
	{Name: "Slovakia", Region: Europe},
	{Name: "Poland", Region: Europe},
	{Name: "Ukraine", Region: Europe},
	{Name: "Belarus", Region: Europe},
	{Name: "Russia", Region: Europe},
	{Name: "Georgia", Region: Europe},
	{Name: "Armenia", Region: Europe},

	// Americas
	{Name: "Ecuador", Region: Americas},
	{Name: "Uruguay", Region: Americas},
	{Name: "Paraguay", Region: Americas},
	{Name: "Costa Rica", Region: Americas},
	{Name: "Panama", Region: Americas},
	{Name: "Jamaica", Region: Americas},
	{Name: "Cuba", Region: Americas},
	{Name: "Guatemala", Region: Americas},
	{Name: "Honduras", Region: Americas},
	{Name: "Nicaragua", Region: Americas},
	{Name: "El Salvador", Region: Americas},
	{Name: "Haiti", Region: Americas},
	{Name: "Dominican Republic", Region: Americas},
	{Name: "Trinidad", Region: Americas},
	{Name: "Barbados", Region: Americas},
	{Name: "Bahamas", Region: Americas},
	{Name: "Belize", Region: Americas},
	{Name: "Guyana", Region: Americas},
	{Name: "Suriname", Region: Americas},
	{Name: "Venezuela", Region: Americas},
	{Name: "Colombia", Region: Americas},
	{Name: "Peru", Region: Americas},
	{Name: "Bolivia", Region: Americas},
	{Name: "Chile", Region: Americas},
	{Name: "Argentina", Region: Americas},

	// Pacific
	{Name: "Fiji", Region: Pacific},
	{Name: "Samoa", Region: Pacific},
	{Name: "Tonga", Region: Pacific},
	{Name: "Vanuatu", Region: Pacific},
	{Name: "Papua New Guinea", Region: Pacific},
	{Name: "Solomon Islands", Region: Pacific},
	{Name: "Palau", Region: Pacific},
	{Name: "Micronesia", Region: Pacific},
	{Name: "Marshall Islands", Region: Pacific},
	{Name: "Kiribati", Region: Pacific},
	{Name: "Tuvalu", Region: Pacific},
	{Name: "Nauru", Region: Pacific},

	// Remaining sovereign states. Kept after the groups above so that
	// short names here never displace an earlier, longer match.
	{Name: "Portugal", Region: Europe, Aliases: []string{"portuguese"}},
	{Name: "Greece", Region: Europe, Aliases: []string{"greek"}},
	{Name: "Iceland", Region: Europe},
	{Name: "Luxembourg", Region: Europe},
	{Name: "Liechtenstein", Region: Europe},
	{Name: "Monaco", Region: Europe},
	{Name: "Kosovo", Region: Europe},
	{Name: "Andorra", Region: Europe},
	{Name: "San Marino", Region: Europe},
	{Name: "Azerbaijan", Region: Asia},
	{Name: "Turkey", Region: Asia, Aliases: []string{"turkish"}},
	{Name: "Israel", Region: Asia},
	{Name: "Saudi Arabia", Region: Asia},
	{Name: "United Arab Emirates", Region: Asia, Aliases: []string{"uae"}},
	{Name: "Qatar", Region: Asia},
	{Name: "Kuwait", Region: Asia},
	{Name: "Bahrain", Region: Asia},
	{Name: "Oman", Region: Asia},
	{Name: "Jordan", Region: Asia},
	{Name: "Lebanon", Region: Asia},
	{Name: "Iraq", Region: Asia},
	{Name: "Iran", Region: Asia},
	{Name: "Syria", Region: Asia},
	{Name: "Yemen", Region: Asia},
	{Name: "Turkmenistan", Region: Asia},
	{Name: "Timor-Leste", Region: Asia},
	{Name: "Angola", Region: Africa},
	{Name: "Mozambique", Region: Africa},
	{Name: "Namibia", Region: Africa},
	{Name: "Malawi", Region: Africa},
	{Name: "Lesotho", Region: Africa},
	{Name: "Eswatini", Region: Africa},
	{Name: "Benin", Region: Africa},
	{Name: "Togo", Region: Africa},
	{Name: "Guinea", Region: Africa},
	{Name: "Sierra Leone", Region: Africa},
	{Name: "Liberia", Region: Africa},
	{Name: "Gambia", Region: Africa},
	{Name: "Mauritania", Region: Africa},
	{Name: "Eritrea", Region: Africa},
	{Name: "Djibouti", Region: Africa},
	{Name: "Somalia", Region: Africa},
	{Name: "South Sudan", Region: Africa},
	{Name: "Burundi", Region: Africa},
	{Name: "Gabon", Region: Africa},
	{Name: "Congo", Region: Africa},
	{Name: "Central African Republic", Region: Africa},
	{Name: "Equatorial Guinea", Region: Africa},
	{Name: "Cape Verde", Region: Africa},
	{Name: "Seychelles", Region: Africa},
	{Name: "Comoros", Region: Africa},
	{Name: "Sao Tome and Principe", Region: Africa},
	{Name: "Grenada", Region: Americas},
	{Name: "Saint Lucia", Region: Americas},
	{Name: "Antigua and Barbuda", Region: Americas},
	{Name: "Saint Kitts and Nevis", Region: Americas},
	{Name: "Saint Vincent", Region: Americas},
}

// Countries returns the country vocabulary in reference order.
func Countries() []Country {
	out := make([]Country, len(countries))
	for i, c := range countries {
		c.Aliases = append([]string(nil), c.Aliases...)
		out[i] = c
	}
	return out
}

// CountryNames returns just the names, in reference order.
func CountryNames() []string {
	out := make([]string, len(countries))
	for i, c := range countries {
		out[i] = c.Name
	}
	return out
}

// CountriesByRegion groups country names by region, preserving reference
// order inside each group.
func CountriesByRegion() map[Region][]string {
	out := make(map[Region][]string, len(AllRegions()))
	for _, c := range countries {
		out[c.Region] = append(out[c.Region], c.Name)
	}
	return out
}

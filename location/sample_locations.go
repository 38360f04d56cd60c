package location

// Sample UN locodes.
var (
	SESTO UNLcode = "SESTO"
	SEGOT UNLcode = "SEGOT"
	AUMEL UNLcode = "AUMEL"
	CNHKG UNLcode = "CNHKG"
	USNYC UNLcode = "USNYC"
	USCHI UNLcode = "USCHI"
	JNTKO UNLcode = "JNTKO"
	DEHAM UNLcode = "DEHAM"
	NLRTM UNLcode = "NLRTM"
	FIHEL UNLcode = "FIHEL"
	FRPAR UNLcode = "FRPAR"
)

// Sample locations.
var (
	Stockholm  = &Location{SESTO, "Stockholm"}
	Gothenburg = &Location{SEGOT, "Gothenburg"}
	Melbourne  = &Location{AUMEL, "Melbourne"}
	Hongkong   = &Location{CNHKG, "Hongkong"}
	NewYork    = &Location{USNYC, "New York"}
	Chicago    = &Location{USCHI, "Chicago"}
	Tokyo      = &Location{JNTKO, "Tokyo"}
	Hamburg    = &Location{DEHAM, "Hamburg"}
	Rotterdam  = &Location{NLRTM, "Rotterdam"}
	Helsinki   = &Location{FIHEL, "Helsinki"}
	Paris      = &Location{FRPAR, "Paris"}
)

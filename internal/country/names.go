package country

// otherNames holds the spellings, keyed by alpha-3, that boundary datasets
// and model configs use besides the ISO short name. Former names stay so
// that older configs keep resolving after a country is renamed.
var otherNames = map[string][]string{
	"ALB": {"Albania", "Republic of Albania"},
	"AUT": {"Austria", "Republic of Austria"},
	"BEL": {"Belgium", "Kingdom of Belgium"},
	"BGR": {"Bulgaria", "Republic of Bulgaria"},
	"BIH": {"Bosnia and Herzegovina", "Bosnia-Herzegovina"},
	"BLR": {"Belarus", "Republic of Belarus"},
	"CHE": {"Switzerland", "Swiss Confederation"},
	"CYP": {"Cyprus", "Republic of Cyprus"},
	"CZE": {"Czechia", "Czech Republic"},
	"DEU": {"Germany", "Federal Republic of Germany"},
	"DNK": {"Denmark", "Kingdom of Denmark"},
	"ESP": {"Spain", "Kingdom of Spain"},
	"EST": {"Estonia", "Republic of Estonia"},
	"FIN": {"Finland", "Republic of Finland"},
	"FRA": {"France", "French Republic"},
	"GBR": {"United Kingdom", "United Kingdom of Great Britain and Northern Ireland", "Great Britain"},
	"GRC": {"Greece", "Hellenic Republic"},
	"HRV": {"Croatia", "Republic of Croatia"},
	"HUN": {"Hungary"},
	"IRL": {"Ireland"},
	"ISL": {"Iceland", "Republic of Iceland"},
	"ITA": {"Italy", "Italian Republic"},
	"KOR": {"South Korea", "Korea, Republic of"},
	"LIE": {"Liechtenstein", "Principality of Liechtenstein"},
	"LTU": {"Lithuania", "Republic of Lithuania"},
	"LUX": {"Luxembourg", "Grand Duchy of Luxembourg"},
	"LVA": {"Latvia", "Republic of Latvia"},
	"MDA": {"Moldova", "Moldova, Republic of", "Republic of Moldova"},
	"MKD": {"North Macedonia", "Republic of North Macedonia", "Macedonia", "Macedonia, Republic of", "The former Yugoslav Republic of Macedonia"},
	"MLT": {"Malta", "Republic of Malta"},
	"MNE": {"Montenegro"},
	"NLD": {"Netherlands", "Kingdom of the Netherlands"},
	"NOR": {"Norway", "Kingdom of Norway"},
	"POL": {"Poland", "Republic of Poland"},
	"PRK": {"North Korea", "Korea, Democratic People's Republic of"},
	"PRT": {"Portugal", "Portuguese Republic"},
	"ROU": {"Romania"},
	"RUS": {"Russia", "Russian Federation"},
	"SRB": {"Serbia", "Republic of Serbia"},
	"SVK": {"Slovakia", "Slovak Republic"},
	"SVN": {"Slovenia", "Republic of Slovenia"},
	"SWE": {"Sweden", "Kingdom of Sweden"},
	"SWZ": {"Eswatini", "Kingdom of Eswatini", "Swaziland"},
	"TUR": {"Türkiye", "Republic of Türkiye", "Turkey"},
	"UKR": {"Ukraine"},
}

package locale

// Country describes one entry of the targeting table: the display name fed to
// provider location parameters, the capital used when a city-level location is
// requested without a city, and the Google interface language.
type Country struct {
	Name    string
	Capital string
	Lang    string
}

// Countries maps ISO 3166-1 alpha-2 codes to their targeting data. The "ZZ"
// entry is a placeholder for unknown regions and is not a valid target.
var Countries = map[string]Country{
	"AE": {Name: "United Arab Emirates", Capital: "Abu Dhabi", Lang: "ar"},
	"AF": {Name: "Afghanistan", Capital: "Kabul", Lang: "fa"},
	"AL": {Name: "Albania", Capital: "Tirana", Lang: "sq"},
	"AM": {Name: "Armenia", Capital: "Yerevan", Lang: "hy"},
	"AO": {Name: "Angola", Capital: "Luanda", Lang: "pt"},
	"AR": {Name: "Argentina", Capital: "Buenos Aires", Lang: "es"},
	"AT": {Name: "Austria", Capital: "Vienna", Lang: "de"},
	"AU": {Name: "Australia", Capital: "Canberra", Lang: "en"},
	"AZ": {Name: "Azerbaijan", Capital: "Baku", Lang: "az"},
	"BA": {Name: "Bosnia and Herzegovina", Capital: "Sarajevo", Lang: "bs"},
	"BD": {Name: "Bangladesh", Capital: "Dhaka", Lang: "bn"},
	"BE": {Name: "Belgium", Capital: "Brussels", Lang: "nl"},
	"BG": {Name: "Bulgaria", Capital: "Sofia", Lang: "bg"},
	"BH": {Name: "Bahrain", Capital: "Manama", Lang: "ar"},
	"BO": {Name: "Bolivia", Capital: "Sucre", Lang: "es"},
	"BR": {Name: "Brazil", Capital: "Brasilia", Lang: "pt"},
	"BY": {Name: "Belarus", Capital: "Minsk", Lang: "be"},
	"CA": {Name: "Canada", Capital: "Ottawa", Lang: "en"},
	"CH": {Name: "Switzerland", Capital: "Bern", Lang: "de"},
	"CL": {Name: "Chile", Capital: "Santiago", Lang: "es"},
	"CM": {Name: "Cameroon", Capital: "Yaounde", Lang: "fr"},
	"CN": {Name: "China", Capital: "Beijing", Lang: "zh-cn"},
	"CO": {Name: "Colombia", Capital: "Bogota", Lang: "es"},
	"CR": {Name: "Costa Rica", Capital: "San Jose", Lang: "es"},
	"CU": {Name: "Cuba", Capital: "Havana", Lang: "es"},
	"CY": {Name: "Cyprus", Capital: "Nicosia", Lang: "el"},
	"CZ": {Name: "Czechia", Capital: "Prague", Lang: "cs"},
	"DE": {Name: "Germany", Capital: "Berlin", Lang: "de"},
	"DK": {Name: "Denmark", Capital: "Copenhagen", Lang: "da"},
	"DO": {Name: "Dominican Republic", Capital: "Santo Domingo", Lang: "es"},
	"DZ": {Name: "Algeria", Capital: "Algiers", Lang: "ar"},
	"EC": {Name: "Ecuador", Capital: "Quito", Lang: "es"},
	"EE": {Name: "Estonia", Capital: "Tallinn", Lang: "et"},
	"EG": {Name: "Egypt", Capital: "Cairo", Lang: "ar"},
	"ES": {Name: "Spain", Capital: "Madrid", Lang: "es"},
	"ET": {Name: "Ethiopia", Capital: "Addis Ababa", Lang: "am"},
	"FI": {Name: "Finland", Capital: "Helsinki", Lang: "fi"},
	"FR": {Name: "France", Capital: "Paris", Lang: "fr"},
	"GB": {Name: "United Kingdom", Capital: "London", Lang: "en"},
	"GE": {Name: "Georgia", Capital: "Tbilisi", Lang: "ka"},
	"GH": {Name: "Ghana", Capital: "Accra", Lang: "en"},
	"GR": {Name: "Greece", Capital: "Athens", Lang: "el"},
	"GT": {Name: "Guatemala", Capital: "Guatemala City", Lang: "es"},
	"HK": {Name: "Hong Kong", Capital: "Hong Kong", Lang: "zh-tw"},
	"HN": {Name: "Honduras", Capital: "Tegucigalpa", Lang: "es"},
	"HR": {Name: "Croatia", Capital: "Zagreb", Lang: "hr"},
	"HU": {Name: "Hungary", Capital: "Budapest", Lang: "hu"},
	"ID": {Name: "Indonesia", Capital: "Jakarta", Lang: "id"},
	"IE": {Name: "Ireland", Capital: "Dublin", Lang: "en"},
	"IL": {Name: "Israel", Capital: "Jerusalem", Lang: "iw"},
	"IN": {Name: "India", Capital: "New Delhi", Lang: "hi"},
	"IQ": {Name: "Iraq", Capital: "Baghdad", Lang: "ar"},
	"IR": {Name: "Iran", Capital: "Tehran", Lang: "fa"},
	"IS": {Name: "Iceland", Capital: "Reykjavik", Lang: "is"},
	"IT": {Name: "Italy", Capital: "Rome", Lang: "it"},
	"JM": {Name: "Jamaica", Capital: "Kingston", Lang: "en"},
	"JO": {Name: "Jordan", Capital: "Amman", Lang: "ar"},
	"JP": {Name: "Japan", Capital: "Tokyo", Lang: "ja"},
	"KE": {Name: "Kenya", Capital: "Nairobi", Lang: "en"},
	"KG": {Name: "Kyrgyzstan", Capital: "Bishkek", Lang: "ky"},
	"KH": {Name: "Cambodia", Capital: "Phnom Penh", Lang: "km"},
	"KR": {Name: "South Korea", Capital: "Seoul", Lang: "ko"},
	"KW": {Name: "Kuwait", Capital: "Kuwait City", Lang: "ar"},
	"KZ": {Name: "Kazakhstan", Capital: "Astana", Lang: "kk"},
	"LB": {Name: "Lebanon", Capital: "Beirut", Lang: "ar"},
	"LK": {Name: "Sri Lanka", Capital: "Colombo", Lang: "si"},
	"LT": {Name: "Lithuania", Capital: "Vilnius", Lang: "lt"},
	"LU": {Name: "Luxembourg", Capital: "Luxembourg", Lang: "fr"},
	"LV": {Name: "Latvia", Capital: "Riga", Lang: "lv"},
	"LY": {Name: "Libya", Capital: "Tripoli", Lang: "ar"},
	"MA": {Name: "Morocco", Capital: "Rabat", Lang: "ar"},
	"MD": {Name: "Moldova", Capital: "Chisinau", Lang: "ro"},
	"ME": {Name: "Montenegro", Capital: "Podgorica", Lang: "sr"},
	"MK": {Name: "North Macedonia", Capital: "Skopje", Lang: "mk"},
	"MM": {Name: "Myanmar", Capital: "Naypyidaw", Lang: "my"},
	"MN": {Name: "Mongolia", Capital: "Ulaanbaatar", Lang: "mn"},
	"MT": {Name: "Malta", Capital: "Valletta", Lang: "mt"},
	"MX": {Name: "Mexico", Capital: "Mexico City", Lang: "es"},
	"MY": {Name: "Malaysia", Capital: "Kuala Lumpur", Lang: "ms"},
	"MZ": {Name: "Mozambique", Capital: "Maputo", Lang: "pt"},
	"NG": {Name: "Nigeria", Capital: "Abuja", Lang: "en"},
	"NI": {Name: "Nicaragua", Capital: "Managua", Lang: "es"},
	"NL": {Name: "Netherlands", Capital: "Amsterdam", Lang: "nl"},
	"NO": {Name: "Norway", Capital: "Oslo", Lang: "no"},
	"NP": {Name: "Nepal", Capital: "Kathmandu", Lang: "ne"},
	"NZ": {Name: "New Zealand", Capital: "Wellington", Lang: "en"},
	"OM": {Name: "Oman", Capital: "Muscat", Lang: "ar"},
	"PA": {Name: "Panama", Capital: "Panama City", Lang: "es"},
	"PE": {Name: "Peru", Capital: "Lima", Lang: "es"},
	"PH": {Name: "Philippines", Capital: "Manila", Lang: "tl"},
	"PK": {Name: "Pakistan", Capital: "Islamabad", Lang: "ur"},
	"PL": {Name: "Poland", Capital: "Warsaw", Lang: "pl"},
	"PT": {Name: "Portugal", Capital: "Lisbon", Lang: "pt"},
	"PY": {Name: "Paraguay", Capital: "Asuncion", Lang: "es"},
	"QA": {Name: "Qatar", Capital: "Doha", Lang: "ar"},
	"RO": {Name: "Romania", Capital: "Bucharest", Lang: "ro"},
	"RS": {Name: "Serbia", Capital: "Belgrade", Lang: "sr"},
	"RU": {Name: "Russia", Capital: "Moscow", Lang: "ru"},
	"SA": {Name: "Saudi Arabia", Capital: "Riyadh", Lang: "ar"},
	"SE": {Name: "Sweden", Capital: "Stockholm", Lang: "sv"},
	"SG": {Name: "Singapore", Capital: "Singapore", Lang: "en"},
	"SI": {Name: "Slovenia", Capital: "Ljubljana", Lang: "sl"},
	"SK": {Name: "Slovakia", Capital: "Bratislava", Lang: "sk"},
	"SN": {Name: "Senegal", Capital: "Dakar", Lang: "fr"},
	"SV": {Name: "El Salvador", Capital: "San Salvador", Lang: "es"},
	"SY": {Name: "Syria", Capital: "Damascus", Lang: "ar"},
	"TH": {Name: "Thailand", Capital: "Bangkok", Lang: "th"},
	"TN": {Name: "Tunisia", Capital: "Tunis", Lang: "ar"},
	"TR": {Name: "Turkey", Capital: "Ankara", Lang: "tr"},
	"TW": {Name: "Taiwan", Capital: "Taipei", Lang: "zh-tw"},
	"TZ": {Name: "Tanzania", Capital: "Dodoma", Lang: "sw"},
	"UA": {Name: "Ukraine", Capital: "Kyiv", Lang: "uk"},
	"UG": {Name: "Uganda", Capital: "Kampala", Lang: "en"},
	"US": {Name: "United States", Capital: "Washington, D.C.", Lang: "en"},
	"UY": {Name: "Uruguay", Capital: "Montevideo", Lang: "es"},
	"UZ": {Name: "Uzbekistan", Capital: "Tashkent", Lang: "uz"},
	"VE": {Name: "Venezuela", Capital: "Caracas", Lang: "es"},
	"VN": {Name: "Vietnam", Capital: "Hanoi", Lang: "vi"},
	"YE": {Name: "Yemen", Capital: "Sanaa", Lang: "ar"},
	"ZA": {Name: "South Africa", Capital: "Pretoria", Lang: "en"},
	"ZM": {Name: "Zambia", Capital: "Lusaka", Lang: "en"},
	"ZW": {Name: "Zimbabwe", Capital: "Harare", Lang: "en"},
	"ZZ": {Name: "Unknown Region", Capital: "", Lang: "en"},
}

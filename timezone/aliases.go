/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package timezone

// DefaultAliases maps the friendly zone names commonly found in Rails payloads
// to IANA zone names.
var DefaultAliases = map[string]string{
	"International Date Line West": "Etc/GMT+12",
	"Midway Island":                "Pacific/Midway",
	"American Samoa":               "Pacific/Pago_Pago",
	"Hawaii":                       "Pacific/Honolulu",
	"Alaska":                       "America/Juneau",
	"Pacific Time (US & Canada)":   "America/Los_Angeles",
	"Tijuana":                      "America/Tijuana",
	"Mountain Time (US & Canada)":  "America/Denver",
	"Arizona":                      "America/Phoenix",
	"Chihuahua":                    "America/Chihuahua",
	"Mazatlan":                     "America/Mazatlan",
	"Central Time (US & Canada)":   "America/Chicago",
	"Saskatchewan":                 "America/Regina",
	"Guadalajara":                  "America/Mexico_City",
	"Mexico City":                  "America/Mexico_City",
	"Monterrey":                    "America/Monterrey",
	"Central America":              "America/Guatemala",
	"Eastern Time (US & Canada)":   "America/New_York",
	"Indiana (East)":               "America/Indiana/Indianapolis",
	"Bogota":                       "America/Bogota",
	"Lima":                         "America/Lima",
	"Quito":                        "America/Lima",
	"Atlantic Time (Canada)":       "America/Halifax",
	"Caracas":                      "America/Caracas",
	"La Paz":                       "America/La_Paz",
	"Santiago":                     "America/Santiago",
	"Newfoundland":                 "America/St_Johns",
	"Brasilia":                     "America/Sao_Paulo",
	"Buenos Aires":                 "America/Argentina/Buenos_Aires",
	"Montevideo":                   "America/Montevideo",
	"Greenland":                    "America/Godthab",
	"Mid-Atlantic":                 "Atlantic/South_Georgia",
	"Azores":                       "Atlantic/Azores",
	"Cape Verde Is.":               "Atlantic/Cape_Verde",
	"Dublin":                       "Europe/Dublin",
	"Edinburgh":                    "Europe/London",
	"Lisbon":                       "Europe/Lisbon",
	"London":                       "Europe/London",
	"Casablanca":                   "Africa/Casablanca",
	"Monrovia":                     "Africa/Monrovia",
	"UTC":                          "Etc/UTC",
	"Belgrade":                     "Europe/Belgrade",
	"Berlin":                       "Europe/Berlin",
	"Bern":                         "Europe/Zurich",
	"Amsterdam":                    "Europe/Amsterdam",
	"Brussels":                     "Europe/Brussels",
	"Copenhagen":                   "Europe/Copenhagen",
	"Madrid":                       "Europe/Madrid",
	"Paris":                        "Europe/Paris",
	"Prague":                       "Europe/Prague",
	"Rome":                         "Europe/Rome",
	"Stockholm":                    "Europe/Stockholm",
	"Vienna":                       "Europe/Vienna",
	"Warsaw":                       "Europe/Warsaw",
	"West Central Africa":          "Africa/Algiers",
	"Athens":                       "Europe/Athens",
	"Bucharest":                    "Europe/Bucharest",
	"Cairo":                        "Africa/Cairo",
	"Helsinki":                     "Europe/Helsinki",
	"Jerusalem":                    "Asia/Jerusalem",
	"Kyiv":                         "Europe/Kiev",
	"Istanbul":                     "Europe/Istanbul",
	"Moscow":                       "Europe/Moscow",
	"Nairobi":                      "Africa/Nairobi",
	"Riyadh":                       "Asia/Riyadh",
	"Tehran":                       "Asia/Tehran",
	"Abu Dhabi":                    "Asia/Muscat",
	"Baku":                         "Asia/Baku",
	"Kabul":                        "Asia/Kabul",
	"Karachi":                      "Asia/Karachi",
	"Tashkent":                     "Asia/Tashkent",
	"Chennai":                      "Asia/Kolkata",
	"Kolkata":                      "Asia/Kolkata",
	"Mumbai":                       "Asia/Kolkata",
	"New Delhi":                    "Asia/Kolkata",
	"Kathmandu":                    "Asia/Kathmandu",
	"Dhaka":                        "Asia/Dhaka",
	"Rangoon":                      "Asia/Rangoon",
	"Bangkok":                      "Asia/Bangkok",
	"Jakarta":                      "Asia/Jakarta",
	"Beijing":                      "Asia/Shanghai",
	"Hong Kong":                    "Asia/Hong_Kong",
	"Singapore":                    "Asia/Singapore",
	"Taipei":                       "Asia/Taipei",
	"Perth":                        "Australia/Perth",
	"Seoul":                        "Asia/Seoul",
	"Tokyo":                        "Asia/Tokyo",
	"Osaka":                        "Asia/Tokyo",
	"Adelaide":                     "Australia/Adelaide",
	"Darwin":                       "Australia/Darwin",
	"Brisbane":                     "Australia/Brisbane",
	"Sydney":                       "Australia/Sydney",
	"Melbourne":                    "Australia/Melbourne",
	"Hobart":                       "Australia/Hobart",
	"Guam":                         "Pacific/Guam",
	"Auckland":                     "Pacific/Auckland",
	"Fiji":                         "Pacific/Fiji",
	"Samoa":                        "Pacific/Apia",
}

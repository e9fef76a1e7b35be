package traits

import "strings"

// KnownGenres is the closed vocabulary of seed genres the catalog search
// accepts. Genre extraction only ever returns entries from this list.
var KnownGenres = []string{
	"acoustic", "afrobeat", "alt-rock", "alternative", "ambient", "anime",
	"black-metal", "bluegrass", "blues", "bossanova", "brazil", "breakbeat",
	"british", "cantopop", "chicago-house", "children", "chill", "classical",
	"club", "comedy", "country", "dance", "dancehall", "death-metal",
	"deep-house", "detroit-techno", "disco", "disney", "drum-and-bass", "dub",
	"dubstep", "edm", "electro", "electronic", "emo", "folk", "forro",
	"french", "funk", "garage", "german", "gospel", "goth", "grindcore",
	"groove", "grunge", "guitar", "happy", "hard-rock", "hardcore",
	"hardstyle", "heavy-metal", "hip-hop", "holidays", "honky-tonk", "house",
	"idm", "indian", "indie", "indie-pop", "industrial", "iranian", "j-dance",
	"j-idol", "j-pop", "j-rock", "jazz", "k-pop", "kids", "latin", "latino",
	"malay", "mandopop", "metal", "metal-misc", "metalcore", "minimal-techno",
	"movies", "mpb", "new-age", "new-release", "opera", "pagode", "party",
	"philippines-opm", "piano", "pop", "pop-film", "post-dubstep", "power-pop",
	"progressive-house", "psych-rock", "punk", "punk-rock", "r-n-b",
	"rainy-day", "reggae", "reggaeton", "road-trip", "rock", "rock-n-roll",
	"rockabilly", "romance", "sad", "salsa", "samba", "sertanejo",
	"show-tunes", "singer-songwriter", "ska", "sleep", "songwriter", "soul",
	"soundtracks", "spanish", "study", "summer", "swedish", "synth-pop",
	"tango", "techno", "trance", "trip-hop", "turkish", "work-out",
	"world-music",
}

// MatchGenres returns every known genre that appears as a literal substring
// of the completion text. Substring membership is deliberately lenient:
// models phrase genre lists inconsistently, and matching against a closed
// vocabulary tolerates that drift better than parsing their formatting.
func MatchGenres(completion string) []string {
	var matched []string
	for _, genre := range KnownGenres {
		if strings.Contains(completion, genre) {
			matched = append(matched, genre)
		}
	}
	return matched
}

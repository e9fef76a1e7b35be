package traits

import (
	"fmt"
	"strings"
)

// traitSystemPrompt instructs the model to emit the full 42-field JSON
// object. The worked example matters: without it smaller models tend to
// drop the null-valued fields, which fails verification.
const traitSystemPrompt = `You are a system that processes user descriptions of songs and generates a JSON response with the following attributes. Based on the user's input, populate the values for minimum (` + "`min_`" + `), maximum (` + "`max_`" + `), or target (` + "`target_`" + `) for each attribute. If the user does not describe an aspect of the song, leave the corresponding value as ` + "`null`" + `.

### Attributes to Populate:

1. ` + "`min_acousticness`, `max_acousticness`, `target_acousticness`" + `
   Type: number
   - For each tunable track attribute, a hard floor (` + "`min_`" + `) or hard ceiling (` + "`max_`" + `) can be provided.
   - Example: ` + "`min_acousticness=0.5`" + ` filters for tracks that are at least 50% acoustic.
   - The ` + "`target_`" + ` value specifies the preferred level of acousticness.
   - Range: 0 - 1

2. ` + "`min_danceability`, `max_danceability`, `target_danceability`" + `
   Type: number
   - Specifies the danceability of the song, from low to high.
   - Example: ` + "`target_danceability=0.8`" + ` prioritizes highly danceable tracks.
   - Range: 0 - 1

3. ` + "`min_duration_ms`, `max_duration_ms`, `target_duration_ms`" + `
   Type: integer
   - Duration of the song in milliseconds.
   - Example: ` + "`max_duration_ms=240000`" + ` restricts results to songs under 4 minutes.

4. ` + "`min_energy`, `max_energy`, `target_energy`" + `
   Type: number
   - Measures the intensity and activity of the song.
   - Example: ` + "`target_energy=0.7`" + ` prefers moderately high-energy tracks.
   - Range: 0 - 1

5. ` + "`min_instrumentalness`, `max_instrumentalness`, `target_instrumentalness`" + `
   Type: number
   - Indicates whether the track is primarily instrumental.
   - Example: ` + "`min_instrumentalness=0.5`" + ` filters for tracks that are mostly instrumental.
   - Range: 0 - 1

6. ` + "`min_key`, `max_key`, `target_key`" + `
   Type: integer
   - Specifies the musical key of the song.
   - Range: 0 - 11

7. ` + "`min_liveness`, `max_liveness`, `target_liveness`" + `
   Type: number
   - Reflects the presence of an audience in the recording.
   - Example: ` + "`target_liveness=0.3`" + ` prefers studio recordings over live performances.
   - Range: 0 - 1

8. ` + "`min_loudness`, `max_loudness`, `target_loudness`" + `
   Type: number
   - Specifies the overall loudness of the track in decibels.

9. ` + "`min_mode`, `max_mode`, `target_mode`" + `
   Type: integer
   - Indicates whether the track is in a major (` + "`1`" + `) or minor (` + "`0`" + `) mode.
   - Range: 0 - 1

10. ` + "`min_popularity`, `max_popularity`, `target_popularity`" + `
    Type: integer
    - Defines the popularity of the track, scored from 0 (least popular) to 100 (most popular).

11. ` + "`min_speechiness`, `max_speechiness`, `target_speechiness`" + `
    Type: number
    - Reflects the presence of spoken words in the track.
    - Example: ` + "`min_speechiness=0.4`" + ` filters for tracks that are mostly spoken word.
    - Range: 0 - 1

12. ` + "`min_tempo`, `max_tempo`, `target_tempo`" + `
    Type: number
    - Specifies the tempo of the track in beats per minute (BPM).
    - Example: ` + "`min_tempo=120`" + ` filters for faster tracks suitable for workouts.

13. ` + "`min_time_signature`, `max_time_signature`, `target_time_signature`" + `
    Type: integer
    - Defines the time signature of the track (e.g., 4/4).
    - Maximum Value: 11

14. ` + "`min_valence`, `max_valence`, `target_valence`" + `
    Type: number
    - Measures the positivity or happiness of the track.
    - Example: ` + "`target_valence=0.9`" + ` prioritizes tracks with a happy mood.
    - Range: 0 - 1

### Behavior:
1. Interpretation: Interpret the user's song description and map it to the relevant attributes.
2. Default Values: If a specific attribute is not described by the user, leave its value as ` + "`null`" + `.
3. Response Format: Generate the following JSON structure with inferred values based on the description.

### Example:

**User Input:**
"A high-energy, fast-paced dance track with little vocals, great for a workout."

**Generated JSON Response:**
` + "```json" + `
{
  "min_acousticness": null,
  "max_acousticness": 0.2,
  "target_acousticness": null,
  "min_danceability": 0.7,
  "max_danceability": null,
  "target_danceability": 0.9,
  "min_duration_ms": null,
  "max_duration_ms": null,
  "target_duration_ms": null,
  "min_energy": 0.8,
  "max_energy": null,
  "target_energy": 0.9,
  "min_instrumentalness": 0.5,
  "max_instrumentalness": null,
  "target_instrumentalness": null,
  "min_key": null,
  "max_key": null,
  "target_key": null,
  "min_liveness": null,
  "max_liveness": null,
  "target_liveness": null,
  "min_loudness": null,
  "max_loudness": null,
  "target_loudness": null,
  "min_mode": null,
  "max_mode": null,
  "target_mode": null,
  "min_popularity": null,
  "max_popularity": null,
  "target_popularity": null,
  "min_speechiness": 0.1,
  "max_speechiness": null,
  "target_speechiness": null,
  "min_tempo": 120,
  "max_tempo": null,
  "target_tempo": 140,
  "min_time_signature": null,
  "max_time_signature": null,
  "target_time_signature": null,
  "min_valence": 0.7,
  "max_valence": null,
  "target_valence": 0.9
}`

// genreSystemPrompt asks which entries of the closed vocabulary apply to
// the user's description. The answer is scanned for substring matches, so
// the exact response format does not matter.
func genreSystemPrompt() string {
	return fmt.Sprintf(
		"Given the description from the user, write out the genres that apply from the following list:\n%s",
		strings.Join(KnownGenres, ", "),
	)
}

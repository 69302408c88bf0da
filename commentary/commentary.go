// Package commentary produces the two canned blurbs shown under the data.
// The text is templated, not inferred from the data.
package commentary

import "fmt"

const (
	alphaTemplate = "Agent Alpha: Based on %s, there are %d records processed. The latest update shows interesting trends worth monitoring."
	betaTemplate  = "Agent Beta: After analyzing %s, our ETL pipeline confirms that data ingestion and transformation worked successfully."
)

// Generate returns the two commentary lines. The source name is plain text;
// escaping is left to whatever renders it.
func Generate(sourceName string, rowCount int) (string, string) {
	return fmt.Sprintf(alphaTemplate, sourceName, rowCount),
		fmt.Sprintf(betaTemplate, sourceName)
}

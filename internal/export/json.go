package export

import (
	"encoding/json"

	"github.com/law-makers/stageradar/pkg/models"
)

func encodeJSON(table *models.Table) ([]byte, error) {
	records := table.Records
	if records == nil {
		records = []models.Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

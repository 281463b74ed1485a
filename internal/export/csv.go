package export

import (
	"bytes"
	"encoding/csv"

	"github.com/law-makers/stageradar/pkg/models"
)

func encodeCSV(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columnsOf(table)); err != nil {
		return nil, err
	}
	for _, rec := range table.Records {
		if err := writer.Write(rec.Values()); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

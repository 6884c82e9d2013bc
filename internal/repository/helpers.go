package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/homegame/api/internal/database"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertSurrealID converts a SurrealDB record ID, which the client may
// return as a string, a models.RecordID, or a map, to "table:id" form.
func convertSurrealID(id interface{}) string {
	if str, ok := id.(string); ok {
		return str
	}

	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	if m, ok := id.(map[string]interface{}); ok {
		tb := ""
		idPart := ""

		if t, ok := m["tb"].(string); ok {
			tb = t
		} else if t, ok := m["Table"].(string); ok {
			tb = t
		}

		if idVal, ok := m["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := m["ID"]; ok {
			idPart = extractIDValue(idVal)
		}

		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// normalizeRecord converts SurrealDB-specific value types in a record
// map (record IDs, datetimes) into plain JSON-friendly values so the
// map can be unmarshaled into a model struct.
func normalizeRecord(data map[string]interface{}) map[string]interface{} {
	for key, v := range data {
		switch t := v.(type) {
		case models.RecordID:
			data[key] = convertSurrealID(t)
		case *models.RecordID:
			data[key] = convertSurrealID(t)
		case models.CustomDateTime:
			data[key] = t.Time.Format(time.RFC3339Nano)
		case *models.CustomDateTime:
			if t != nil {
				data[key] = t.Time.Format(time.RFC3339Nano)
			}
		case time.Time:
			data[key] = t.Format(time.RFC3339Nano)
		}
	}
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	return data
}

// decodeRecord unwraps a single SurrealDB result and unmarshals it into
// dst via a JSON round trip. Returns database.ErrNotFound for empty
// results.
func decodeRecord(result interface{}, dst interface{}) error {
	if result == nil {
		return database.ErrNotFound
	}

	// Navigate through the response wrapper
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return errors.New("unexpected result format")
	}

	jsonBytes, err := json.Marshal(normalizeRecord(data))
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, dst)
}

// decodeRecords unwraps a SurrealDB multi-row result into record maps.
func decodeRecords(result interface{}) ([]map[string]interface{}, error) {
	if result == nil {
		return nil, nil
	}

	rows, ok := result.([]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	if len(rows) > 0 {
		if resp, ok := rows[0].(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				rows = resultData
			}
		}
	}

	records := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			records = append(records, normalizeRecord(data))
		}
	}
	return records, nil
}

// decodeList unwraps a multi-row result and unmarshals it into dst,
// which must be a pointer to a slice.
func decodeList(result interface{}, dst interface{}) error {
	records, err := decodeRecords(result)
	if err != nil {
		return err
	}

	jsonBytes, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, dst)
}

// extractCount extracts count from a SurrealDB count query result
func extractCount(result interface{}) int {
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok && len(resultData) > 0 {
				if data, ok := resultData[0].(map[string]interface{}); ok {
					return extractCountValue(data["count"])
				}
			}
		}
		return extractCountValue(resp["count"])
	}
	return 0
}

// extractCountValue converts various numeric types to int
func extractCountValue(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}

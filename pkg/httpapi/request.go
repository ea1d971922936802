package httpapi

import (
	"encoding/json"
	"io"
)

func DecodeJSON(body io.Reader, dst any) error {
	return json.NewDecoder(body).Decode(dst)
}

package server

import "encoding/json"

// decodePayload unmarshals a full inbound message into its per-action
// payload struct and runs the struct validation tags.
func (s *Server) decodePayload(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}
	return s.validate.Struct(dest)
}

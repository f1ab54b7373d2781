package wire

// Response is one complete transaction result: the records from the data
// line, if any, plus the terminal status. It is owned by the caller that
// issued the command and never cached or shared.
type Response struct {
	Status  Status
	Records []Record
}

// OK reports whether the server accepted the command.
func (r *Response) OK() bool {
	return r.Status.OK()
}

// ParseResponse assembles a Response from a status line and an optional data
// line. An absent or empty data line yields zero records.
func ParseResponse(statusLine, dataLine string) (*Response, error) {
	status, err := DecodeStatus(statusLine)
	if err != nil {
		return nil, err
	}
	return &Response{Status: status, Records: DecodeRecords(dataLine)}, nil
}

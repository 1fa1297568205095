package travelservice

// DistanceMatrixResponse ответ Distance Matrix API
type DistanceMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Rows         []Row  `json:"rows"`
}

type Row struct {
	Elements []Element `json:"elements"`
}

// Element результат для одной пары origin/destination
type Element struct {
	Status            string `json:"status"`
	Distance          *Value `json:"distance,omitempty"`
	Duration          *Value `json:"duration,omitempty"`
	DurationInTraffic *Value `json:"duration_in_traffic,omitempty"`
}

// Value значение в метрах или секундах
type Value struct {
	Value int64  `json:"value"`
	Text  string `json:"text"`
}

const statusOK = "OK"

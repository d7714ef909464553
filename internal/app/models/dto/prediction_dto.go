package dto

import "github.com/yigit/placement/internal/app/models"

// PredictBatchResponse answers POST /predict
type PredictBatchResponse struct {
	InputCount  int      `json:"input_count" example:"2"`
	Predictions []string `json:"predictions" example:"Yes,No"`
	Warning     string   `json:"warning,omitempty"`
}

// StudentPredictionResponse answers GET /predict/student/{id}
type StudentPredictionResponse struct {
	StudentID    int64                `json:"student_id" example:"7"`
	StudentName  string               `json:"student_name" example:"Asha Rao"`
	StudentEmail string               `json:"student_email" example:"asha@college.edu"`
	Prediction   string               `json:"prediction" example:"Yes"`
	StudentData  models.FeatureVector `json:"student_data"`
	Warning      string               `json:"warning,omitempty"`
}

// PredictionErrorResponse is the flat error body of the prediction routes
type PredictionErrorResponse struct {
	Error         string   `json:"error" example:"Incomplete student data"`
	MissingFields []string `json:"missing_fields,omitempty" example:"cgpa"`
	Message       string   `json:"message,omitempty"`
}

package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendVerificationTaskName  = "sendVerificationTask"
	SendVerificationQueueName = "sendVerificationQueue"
)

type SendVerification struct {
	Username string `json:"username"`
}

func NewSendVerificationTask(username string) (*asynq.Task, error) {
	var data SendVerification
	data.Username = username

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendVerificationTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendVerificationQueueName),
	), nil
}

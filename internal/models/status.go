package models

import (
	"fmt"
	"strings"

	"ridemedia-backend/internal/apperrors"
)

type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"   // Новая заявка
	StatusContacted SubmissionStatus = "contacted" // Связались
	StatusApproved  SubmissionStatus = "approved"  // Одобрена
	StatusRejected  SubmissionStatus = "rejected"  // Отклонена
)

// Переходы между статусами не ограничены: одобренную заявку можно вернуть в работу
var submissionStatuses = []SubmissionStatus{StatusPending, StatusContacted, StatusApproved, StatusRejected}

func (s SubmissionStatus) IsValid() bool {
	for _, status := range submissionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseStatus проверяет значение статуса, пришедшее от клиента
func ParseStatus(value string) (SubmissionStatus, error) {
	status := SubmissionStatus(strings.TrimSpace(value))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, value)
	}
	return status, nil
}

// SubmissionKind различает два типа заявок в метриках, логах и экспорте
type SubmissionKind string

const (
	KindDriver     SubmissionKind = "driver"
	KindAdvertiser SubmissionKind = "advertiser"
)

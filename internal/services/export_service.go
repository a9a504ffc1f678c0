package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	AttemptsSheet = "Attempts"
	SummarySheet  = "Summary"

	exportTimeLayout = "2006-01-02 15:04:05"
)

type exportService struct {
	repo   repositories.Repository
	collab Collaborators
	logger *ServiceLogger
}

func NewExportService(deps Dependencies) ExportService {
	return &exportService{
		repo:   deps.Repo,
		collab: deps.Collaborators,
		logger: NewServiceLogger(deps.Logger, "export_service"),
	}
}

// ExportExamResults renders every attempt of an exam plus the exam summary
// into an xlsx workbook
func (s *exportService) ExportExamResults(ctx context.Context, token string, examID uint) (_ []byte, err error) {
	op := s.logger.WithOperation(ctx, "export_exam_results", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return nil, err
	}

	attempts, err := loadExamAttempts(ctx, s.repo, examID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeAttemptsSheet(f, attempts); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, BuildExamStatistics(examID, attempts)); err != nil {
		return nil, err
	}

	// excelize always starts with Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAttemptsSheet(f *excelize.File, attempts []*models.StudentExam) error {
	index, err := f.NewSheet(AttemptsSheet)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []interface{}{
		"Attempt ID", "User ID", "Started At", "Extra Time (minutes)",
		"Submitted At", "Correct Questions", "Total Questions", "Grade",
	}
	if err := f.SetSheetRow(AttemptsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write Excel header: %w", err)
	}

	for i, attempt := range attempts {
		submittedAt := ""
		if attempt.SubmittedAt != nil {
			submittedAt = attempt.SubmittedAt.Format(exportTimeLayout)
		}

		row := []interface{}{
			attempt.ID,
			attempt.UserID,
			attempt.StartingTime.Format(exportTimeLayout),
			attempt.ExtraTime,
			submittedAt,
			attempt.CorrectQuestions,
			len(attempt.ExamQuestions),
			attempt.Grade,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(AttemptsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write attempt %d: %w", attempt.ID, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, stats *models.ExamStatistics) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	least := "not enough data"
	if !stats.InsufficientData {
		ids := make([]string, len(stats.LeastAnsweredCorrectly))
		for i, id := range stats.LeastAnsweredCorrectly {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		least = strings.Join(ids, ", ")
	}

	rows := [][]interface{}{
		{"Exam ID", stats.ExamID},
		{"Total Attempts", stats.TotalAttempts},
		{"Participants", stats.Participants},
		{"Average Grade", stats.AverageGrade},
		{"Least Answered Correctly", least},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

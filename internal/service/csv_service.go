package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/questiontype"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"
	"questionnaire_backend/pkg/monitoring"
	"questionnaire_backend/pkg/tracing"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var csvHeader = []string{"seq", "txt", "type", "weight", "size", "alternatives", "max_label", "min_label"}

const (
	msgCSVEmpty     = "The CSV file has no question rows."
	msgCSVBadHeader = "The CSV header must be: " // 后接期望的表头
)

// csvRow 导入时的一行，字段校验交给 validator
type csvRow struct {
	Line         int
	Seq          float64 `validate:"gte=0"`
	Txt          string  `validate:"required"`
	Type         string  `validate:"required"`
	Weight       *int    `validate:"omitempty,gte=0"`
	Size         string  `validate:"max=32"`
	Alternatives string  `validate:"max=255"`
	MaxLabel     string  `validate:"max=255"`
	MinLabel     string  `validate:"max=255"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Created  []model.Question `json:"created"`
}

// CSVService 问卷题目的 CSV 导入导出
type CSVService struct {
	Questionnaires QuestionnaireStore
	Questions      QuestionStore
	Storage        *StorageService
	Scoring        *ScoringService
	Validate       *validator.Validate
}

func NewCSVService(questionnaires QuestionnaireStore, questions QuestionStore, storage *StorageService, scoring *ScoringService) *CSVService {
	return &CSVService{
		Questionnaires: questionnaires,
		Questions:      questions,
		Storage:        storage,
		Scoring:        scoring,
		Validate:       validator.New(),
	}
}

func optionalString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatSeq(seq float64) string {
	return strconv.FormatFloat(seq, 'f', -1, 64)
}

// Export 按 seq 顺序写出全部题目
func (s *CSVService) Export(ctx context.Context, actor ActingUser, questionnaireID uint, w io.Writer) (err error) {
	_, span := tracing.StartSpan(ctx, "CSVService.Export")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_export", err)
	}()

	if err := actor.requireAccess(); err != nil {
		return err
	}
	if _, err := s.Questionnaires.FindByID(questionnaireID); err != nil {
		return notFoundOr(err, msgQuestionnaireAbsent)
	}
	questions, err := s.Questions.ListByQuestionnaire(questionnaireID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, q := range questions {
		weight := ""
		if q.Weight != nil {
			weight = strconv.Itoa(*q.Weight)
		}
		row := []string{
			formatSeq(q.Seq),
			q.Txt,
			string(q.Type),
			weight,
			optionalString(q.Size),
			optionalString(q.Alternatives),
			optionalString(q.MaxLabel),
			optionalString(q.MinLabel),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportToStorage 导出后上传到存储服务，返回文件地址
func (s *CSVService) ExportToStorage(ctx context.Context, actor ActingUser, questionnaireID uint) (string, error) {
	var buf bytes.Buffer
	if err := s.Export(ctx, actor, questionnaireID, &buf); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("exports/questionnaire_%d_%s.csv", questionnaireID, uuid.New().String())
	url, err := s.Storage.Upload(ctx, filename, &buf, int64(buf.Len()), util.MimeCSV)
	if err != nil {
		return "", err
	}
	logger.Log.Info("questionnaire exported", zap.Uint("questionnaire_id", questionnaireID), zap.String("url", url))
	return url, nil
}

// Import 先解析并校验全部行，全部通过后在一个事务中追加为新题目
func (s *CSVService) Import(ctx context.Context, actor ActingUser, questionnaireID uint, r io.Reader) (result *ImportResult, err error) {
	_, span := tracing.StartSpan(ctx, "CSVService.Import")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_import", err)
	}()

	q, err := s.Questionnaires.FindByID(questionnaireID)
	if err != nil {
		return nil, notFoundOr(err, msgQuestionnaireAbsent)
	}
	if err := actor.requireEdit(q); err != nil {
		return nil, err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return nil, err
	}

	rows, err := s.parse(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.Questions.CountByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(rows))
	for i, row := range rows {
		seq := row.Seq
		if seq == 0 {
			seq = float64(existing) + float64(i+1)
		}
		questions = append(questions, model.Question{
			QuestionnaireID: q.ID,
			Seq:             seq,
			Txt:             row.Txt,
			Type:            model.QuestionType(row.Type),
			Weight:          row.Weight,
			Size:            nonEmpty(row.Size),
			Alternatives:    nonEmpty(row.Alternatives),
			MaxLabel:        nonEmpty(row.MaxLabel),
			MinLabel:        nonEmpty(row.MinLabel),
			BreakBefore:     true,
		})
	}
	if err := s.Questions.CreateBatch(questions); err != nil {
		return nil, err
	}
	result = &ImportResult{Imported: len(questions), Created: questions}

	if s.Scoring != nil && result.Imported > 0 {
		s.Scoring.InvalidateMaxScore(q.ID)
	}
	logger.Log.Info("questionnaire imported",
		zap.Uint("questionnaire_id", q.ID),
		zap.Int("rows", result.Imported),
	)
	return result, nil
}

func (s *CSVService) parse(r io.Reader) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, util.ValidationError("invalid CSV: " + err.Error())
	}
	if len(records) == 0 {
		return nil, util.ValidationError(msgCSVEmpty)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"txt", "type"} {
		if _, ok := columns[required]; !ok {
			return nil, util.ValidationError(msgCSVBadHeader + strings.Join(csvHeader, ","))
		}
	}
	if len(records) < 2 {
		return nil, util.ValidationError(msgCSVEmpty)
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]csvRow, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		row := csvRow{
			Line:         line,
			Txt:          field(record, "txt"),
			Type:         field(record, "type"),
			Size:         field(record, "size"),
			Alternatives: field(record, "alternatives"),
			MaxLabel:     field(record, "max_label"),
			MinLabel:     field(record, "min_label"),
		}
		if v := field(record, "seq"); v != "" {
			seq, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, util.ValidationError(fmt.Sprintf("line %d: invalid seq %q", line, v))
			}
			row.Seq = seq
		}
		if v := field(record, "weight"); v != "" {
			weight, err := strconv.Atoi(v)
			if err != nil {
				return nil, util.ValidationError(fmt.Sprintf("line %d: invalid weight %q", line, v))
			}
			row.Weight = &weight
		}

		if err := s.Validate.Struct(row); err != nil {
			return nil, util.ValidationError(fmt.Sprintf("line %d: %s", line, describeValidation(err)))
		}
		if _, err := questiontype.Resolve(model.QuestionType(row.Type)); err != nil {
			return nil, util.ValidationError(fmt.Sprintf("line %d: %s", line, err.Error()))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/prepgenie/prepgenie-backend/internal/config"
	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

// AllowedResumeExtensions are the resume formats the generation service
// understands.
var AllowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// Validator validates incoming requests and file uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateStartSession validates StartSessionRequest
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if req.JobTitle == "" {
		return fmt.Errorf("%w: jobTitle", entity.ErrMissingField)
	}
	if req.JobDescription == "" {
		return fmt.Errorf("%w: jobDescription", entity.ErrMissingField)
	}
	return nil
}

// ValidateResumeFile validates an uploaded resume
func (v *Validator) ValidateResumeFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: resume", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedResumeExtensions[ext] {
		return fmt.Errorf("%w: %s (allowed: .pdf, .docx, .txt, .md)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxResumeSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxResumeSize)
	}

	return nil
}

// ValidateAudioFile validates dictation uploads (WAV format only)
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: audio file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".wav" {
		return fmt.Errorf("%w: %s (only .wav files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" &&
		contentType != "audio/wav" &&
		contentType != "audio/x-wav" &&
		contentType != "application/octet-stream" {
		return fmt.Errorf("%w: content type '%s' (expected audio/wav, audio/x-wav or application/octet-stream)", entity.ErrInvalidExtension, contentType)
	}

	return nil
}

// ValidateMoreQuestions validates MoreQuestionsRequest
func (v *Validator) ValidateMoreQuestions(req *entity.MoreQuestionsRequest) error {
	return req.Category.Validate()
}

// ValidateSelectMode validates SelectModeRequest
func (v *Validator) ValidateSelectMode(req *entity.SelectModeRequest) error {
	return req.Mode.Validate()
}

// ValidateNavigate validates NavigateRequest
func (v *Validator) ValidateNavigate(req *entity.NavigateRequest) error {
	if req.Direction != "next" && req.Direction != "prev" {
		return fmt.Errorf("%w: direction must be 'next' or 'prev'", entity.ErrInvalidParameter)
	}
	return nil
}

// ValidateSpeak validates SpeakRequest
func (v *Validator) ValidateSpeak(req *entity.SpeakRequest) error {
	if req.Text == "" {
		return fmt.Errorf("%w: text", entity.ErrMissingField)
	}
	return nil
}

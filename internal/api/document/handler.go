package document

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"

	"docqa/config"
	"docqa/internal/database"
	"docqa/internal/database/model"
	"docqa/internal/vectorstore"
	"docqa/pkg/apperror"
	"docqa/pkg/apperror/status"
	"docqa/pkg/logger"
	s3client "docqa/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

func HandleList(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleDocument, c, err)
	}

	var docs []model.Document
	if err := db.WithContext(c.Context()).Order("created_at DESC").Find(&docs).Error; err != nil {
		return apperror.InternalError(config.ModuleDocument, c, err)
	}

	return apperror.Success(config.ModuleDocument, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "documents listed",
		TrackingID: trackingID,
		Data:       docs,
	})
}

// HandleDelete removes a document everywhere: its vector-store chunks, the
// stored original and the registry row, in that order.
func HandleDelete(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	docID, err := strconv.ParseInt(c.Params("docID"), 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModuleDocument, c, status.MissingParams, "invalid docID")
	}

	doc, err := database.GetEntityByID[model.Document](c.Context(), docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleDocument, c, status.DocumentNotFound, "document not found")
		}
		return apperror.InternalError(config.ModuleDocument, c, err)
	}

	if err := vectorstore.DeleteByDoc(c.Context(), docID); err != nil {
		return apperror.InternalError(config.ModuleDocument, c, err)
	}

	if err := removeStored(doc.StoragePath); err != nil {
		logger.Error(err, "%v: remove stored original failed", config.ModuleDocument)
	}

	if err := database.DeleteEntityByID[model.Document](c.Context(), docID); err != nil {
		return apperror.InternalError(config.ModuleDocument, c, err)
	}

	return apperror.Success(config.ModuleDocument, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "document deleted",
		TrackingID: trackingID,
		Data:       fiber.Map{"doc_id": docID},
	})
}

func removeStored(storagePath string) error {
	if strings.HasPrefix(storagePath, "s3://") {
		u, err := url.Parse(storagePath)
		if err != nil {
			return err
		}
		cli, err := s3client.GetClient()
		if err != nil {
			return err
		}
		_, err = cli.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: aws.String(u.Host),
			Key:    aws.String(strings.TrimPrefix(u.Path, "/")),
		})
		return err
	}
	err := os.Remove(storagePath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

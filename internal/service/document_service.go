package service

import (
	"context"
	"log"
	"time"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/pkg/apperror"
	"ai-chatbot-be/internal/repository/specification"
	"ai-chatbot-be/internal/repository/unitofwork"
	"ai-chatbot-be/pkg/vectorstore"

	"github.com/google/uuid"
)

type IDocumentService interface {
	CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocuments(ctx context.Context, req *dto.DocumentListRequest) (*dto.PageResponse[dto.DocumentResponse], error)
	GetDocument(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
	vectors    vectorstore.VectorStore
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, vectors vectorstore.VectorStore) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
		vectors:    vectors,
	}
}

func toDocumentResponse(doc *entity.KnowledgeDocument) dto.DocumentResponse {
	return dto.DocumentResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.KnowledgeDocument{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	// The relational row is the source of truth; indexing is best-effort.
	if err := s.vectors.Index(ctx, doc.Id, doc.Content); err != nil {
		log.Printf("[WARN] Failed to index document %s: %v", doc.Id, err)
	}

	resp := toDocumentResponse(doc)
	return &resp, nil
}

func (s *documentService) GetDocuments(ctx context.Context, req *dto.DocumentListRequest) (*dto.PageResponse[dto.DocumentResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 || size > 100 {
		size = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: size, Offset: (page - 1) * size},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		result = append(result, toDocumentResponse(doc))
	}

	resp := dto.NewPageResponse(result, page, size, total)
	return &resp, nil
}

func (s *documentService) GetDocument(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.DocumentNotFound()
	}

	resp := toDocumentResponse(doc)
	return &resp, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperror.DocumentNotFound()
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := s.vectors.Delete(ctx, id); err != nil {
		log.Printf("[WARN] Failed to drop document %s from index: %v", id, err)
	}

	return nil
}

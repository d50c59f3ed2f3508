package main

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// resource binds the http surface of a catalog collection to its operations.
type resource[T any] struct {
	name   string
	plural string
	title  string
	list   func(context.Context, ListParams) ([]T, error)
	create func(context.Context, T) (T, error)
	get    func(context.Context, string) (T, bool, error)
	update func(context.Context, string, T) (T, bool, error)
	remove func(context.Context, string) (bool, error)
}

func (api *APIHandler) bookResource() resource[Book] {
	return resource[Book]{
		name:   "book",
		plural: string(BooksCollection),
		title:  "Book",
		list:   api.catalog.ListBooks,
		create: api.catalog.CreateBook,
		get:    api.catalog.GetBook,
		update: api.catalog.UpdateBook,
		remove: api.catalog.DeleteBook,
	}
}

func (api *APIHandler) authorResource() resource[Author] {
	return resource[Author]{
		name:   "author",
		plural: string(AuthorsCollection),
		title:  "Author",
		list:   api.catalog.ListAuthors,
		create: api.catalog.CreateAuthor,
		get:    api.catalog.GetAuthor,
		update: api.catalog.UpdateAuthor,
		remove: api.catalog.DeleteAuthor,
	}
}

func (api *APIHandler) publisherResource() resource[Publisher] {
	return resource[Publisher]{
		name:   "publisher",
		plural: string(PublishersCollection),
		title:  "Publisher",
		list:   api.catalog.ListPublishers,
		create: api.catalog.CreatePublisher,
		get:    api.catalog.GetPublisher,
		update: api.catalog.UpdatePublisher,
		remove: api.catalog.DeletePublisher,
	}
}

// sendError logs the failure and writes the api error envelope.
func (api *APIHandler) sendError(w http.ResponseWriter, r *http.Request, status int, message string, err error, fields ...zap.Field) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	fields = append(fields, zap.String("request.id", requestID), zap.Int("response.status", status))
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if status >= http.StatusInternalServerError {
		api.logger.Error(message, fields...)
	} else {
		api.logger.Info(message, fields...)
	}
	errResp := NewAPIError(requestID, status, message, EmptyData)
	if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// sendFailure answers with the status and client message matching a catalog error.
func (api *APIHandler) sendFailure(w http.ResponseWriter, r *http.Request, err error, fallback string, fields ...zap.Field) {
	api.sendError(w, r, StatusFromError(err), ClientMessage(err, fallback), err, fields...)
}

func (api *APIHandler) send(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", resp.RequestID), zap.Error(err))
	}
}

func listHandler[T any](api *APIHandler, res resource[T]) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		records, err := res.list(r.Context(), NewListParams(r.URL.Query()))
		if err != nil {
			api.sendFailure(w, r, err, "failed to list "+res.plural)
			return
		}
		total := len(records)
		api.logger.Debug("success to list "+res.plural, zap.String("request.id", requestID), zap.Int("total", total))
		api.send(w, r, GenericResponse(requestID, http.StatusOK, res.title+"s fetched successfully.", &total, records))
	}
}

func createHandler[T any](api *APIHandler, res resource[T]) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		var record T
		if err := DecodeRequestBody(w, r, &record); err != nil {
			api.sendError(w, r, http.StatusBadRequest, "invalid "+res.name+" payload", err)
			return
		}
		created, err := res.create(r.Context(), record)
		if err != nil {
			api.sendFailure(w, r, err, "failed to create the "+res.name)
			return
		}
		api.logger.Info("success to create "+res.name, zap.String("request.id", requestID))
		api.send(w, r, GenericResponse(requestID, http.StatusCreated, res.title+" created successfully.", nil, created))
	}
}

func getHandler[T any](api *APIHandler, res resource[T]) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		id := ps.ByName("id")
		record, found, err := res.get(r.Context(), id)
		if err != nil {
			api.sendFailure(w, r, err, "failed to get the "+res.name, zap.String(res.name+".id", id))
			return
		}
		if !found {
			api.sendError(w, r, http.StatusNotFound, res.name+" does not exist", nil, zap.String(res.name+".id", id))
			return
		}
		api.send(w, r, GenericResponse(requestID, http.StatusOK, res.title+" fetched successfully.", nil, record))
	}
}

func updateHandler[T any](api *APIHandler, res resource[T]) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		id := ps.ByName("id")
		var record T
		if err := DecodeRequestBody(w, r, &record); err != nil {
			api.sendError(w, r, http.StatusBadRequest, "invalid "+res.name+" payload", err, zap.String(res.name+".id", id))
			return
		}
		updated, found, err := res.update(r.Context(), id, record)
		if err != nil {
			api.sendFailure(w, r, err, "failed to update the "+res.name, zap.String(res.name+".id", id))
			return
		}
		if !found {
			api.sendError(w, r, http.StatusNotFound, res.name+" does not exist", nil, zap.String(res.name+".id", id))
			return
		}
		api.logger.Info("success to update "+res.name, zap.String(res.name+".id", id), zap.String("request.id", requestID))
		api.send(w, r, GenericResponse(requestID, http.StatusOK, res.title+" updated successfully.", nil, updated))
	}
}

func deleteHandler[T any](api *APIHandler, res resource[T]) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		id := ps.ByName("id")
		removed, err := res.remove(r.Context(), id)
		if err != nil {
			api.sendFailure(w, r, err, "failed to delete the "+res.name, zap.String(res.name+".id", id))
			return
		}
		if !removed {
			api.sendError(w, r, http.StatusNotFound, res.name+" does not exist", nil, zap.String(res.name+".id", id))
			return
		}
		api.logger.Info("success to delete "+res.name, zap.String(res.name+".id", id), zap.String("request.id", requestID))
		if err = WriteNoContent(r.Context(), w); err != nil {
			api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
		}
	}
}

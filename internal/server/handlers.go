package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/insightstack/insightstack/internal/category"
	"github.com/insightstack/insightstack/internal/channel"
	"github.com/insightstack/insightstack/internal/export"
	"github.com/insightstack/insightstack/internal/models"
	"github.com/insightstack/insightstack/internal/stack"
	"github.com/insightstack/insightstack/internal/store"
)

const defaultTagLimit = 50

func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func (s *Server) handleListStacks(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := &models.StackQuery{
		ChannelID:   params.Get("channel"),
		Category:    params.Get("category"),
		Tags:        params.Get("tags"),
		Search:      params.Get("search"),
		Sort:        params.Get("sort"),
		Limit:       intParam(r, "limit"),
		Offset:      intParam(r, "offset"),
		MinInsights: intParam(r, "min_insights"),
	}
	if query.Offset < 0 {
		s.respondError(w, http.StatusBadRequest, "offset must not be negative")
		return
	}

	response, err := s.engine.ListStacks(r.Context(), query)
	if err != nil {
		s.logger.Error("list stacks failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetStack(w http.ResponseWriter, r *http.Request) {
	// Stack IDs are thumbnail URLs, so they arrive percent-encoded.
	id := chi.URLParam(r, "stackID")
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}

	st, err := s.engine.GetStack(r.Context(), id)
	if err == store.ErrNotFound {
		s.respondError(w, http.StatusNotFound, "stack not found")
		return
	}
	if err != nil {
		s.logger.Error("get stack failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleListInsights(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := store.Query{
		ChannelID: params.Get("channel"),
		Category:  params.Get("category"),
		Tags:      splitTags(params.Get("tags")),
		Search:    params.Get("search"),
		Limit:     intParam(r, "limit"),
		Offset:    intParam(r, "offset"),
	}
	if query.Limit <= 0 {
		query.Limit = s.searchCfg.DefaultLimit
	}
	if query.Limit > s.searchCfg.MaxLimit {
		query.Limit = s.searchCfg.MaxLimit
	}
	if query.Offset < 0 {
		s.respondError(w, http.StatusBadRequest, "offset must not be negative")
		return
	}

	insights, err := s.store.ListInsights(r.Context(), query)
	if err != nil {
		s.logger.Error("list insights failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.store.CountInsights(r.Context(), query)
	if err != nil {
		s.logger.Error("count insights failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &models.InsightListResponse{Data: insights, Total: total})
}

func (s *Server) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "insightID")
	insight, err := s.store.GetInsight(r.Context(), id)
	if err == store.ErrNotFound {
		s.respondError(w, http.StatusNotFound, "insight not found")
		return
	}
	if err != nil {
		s.logger.Error("get insight failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, insight)
}

func (s *Server) handleRelatedInsights(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "insightID")
	insight, err := s.store.GetInsight(r.Context(), id)
	if err == store.ErrNotFound {
		s.respondError(w, http.StatusNotFound, "insight not found")
		return
	}
	if err != nil {
		s.logger.Error("get insight failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var related []*models.Insight
	if insight.ThumbnailURL != "" {
		siblings, err := s.store.InsightsByThumbnail(r.Context(), insight.ThumbnailURL)
		if err != nil {
			s.logger.Error("related insights failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		related = make([]*models.Insight, 0, len(siblings))
		for _, sib := range siblings {
			if sib.ID != insight.ID {
				related = append(related, sib)
			}
		}
	} else {
		all, err := s.store.ListInsights(r.Context(), store.Query{})
		if err != nil {
			s.logger.Error("related insights failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		related = stack.Related(insight, all)
	}
	s.respondJSON(w, http.StatusOK, &models.InsightListResponse{Data: related, Total: int64(len(related))})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	s.logger.Debug("search request", zap.String("query", query))

	start := time.Now()
	results, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	total := len(results)
	if limit := intParam(r, "limit"); limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Results:   results,
		Total:     total,
		Query:     query,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	suggestions, err := s.engine.Suggest(r.Context(), query, intParam(r, "max"))
	if err != nil {
		s.logger.Error("suggest failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &models.SuggestResponse{Suggestions: suggestions, Query: query})
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.DistinctCategories(r.Context())
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	counts := make(map[string]int)
	for _, c := range raw {
		counts[category.Normalize(c)]++
	}
	categories := make([]categoryCount, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, categoryCount{Name: name, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Name < categories[j].Name
	})
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"data": categories, "total": len(categories)})
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.store.Channels(r.Context())
	if err != nil {
		s.logger.Error("list channels failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i := range channels {
		channels[i].ChannelName = channel.Name(channels[i].ChannelID, channels[i].ChannelName)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"data": channels, "total": len(channels)})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit")
	if limit <= 0 {
		limit = defaultTagLimit
	}
	tags, err := s.store.TopTags(r.Context(), limit)
	if err != nil {
		s.logger.Error("list tags failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"data": tags, "total": len(tags)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := r.URL.Query()
	insights, err := s.store.ListInsights(r.Context(), store.Query{
		ChannelID: params.Get("channel"),
		Category:  params.Get("category"),
		Tags:      splitTags(params.Get("tags")),
		Search:    params.Get("search"),
	})
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName()+`"`)
	if err := export.Write(w, format, insights); err != nil {
		s.logger.Error("export write failed", zap.Error(err))
	}
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.favorites.List(r.Context())
	if err != nil {
		s.logger.Error("list favorites failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"data": favs, "total": len(favs)})
}

type favoriteRequest struct {
	InsightID string `json:"insight_id"`
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InsightID == "" {
		s.respondError(w, http.StatusBadRequest, "insight_id is required")
		return
	}
	if _, err := s.store.GetInsight(r.Context(), req.InsightID); err == store.ErrNotFound {
		s.respondError(w, http.StatusNotFound, "insight not found")
		return
	} else if err != nil {
		s.logger.Error("add favorite failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.favorites.Add(r.Context(), req.InsightID); err != nil {
		s.logger.Error("add favorite failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"insight_id": req.InsightID, "status": "saved"})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "insightID")
	if err := s.favorites.Remove(r.Context(), id); err != nil {
		s.logger.Error("remove favorite failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"insight_id": id, "status": "removed"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	insightCount, err := s.store.CountInsights(ctx, store.Query{})
	if err != nil {
		s.logger.Error("status: count insights failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	favoriteCount, err := s.favorites.Count(ctx)
	if err != nil {
		s.logger.Error("status: count favorites failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"insights":    insightCount,
		"favorites":   favoriteCount,
		"cached_sets": s.engine.CacheLen(),
		"config": map[string]interface{}{
			"default_limit":   s.searchCfg.DefaultLimit,
			"max_limit":       s.searchCfg.MaxLimit,
			"max_suggestions": s.searchCfg.MaxSuggestions,
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

package web

import (
	"html/template"
	"net/http"
	"time"

	"pixelpage/internal/models"
	"pixelpage/internal/modules/blobstore"
	"pixelpage/internal/modules/counter"
	"pixelpage/internal/modules/imagefetch"
	"pixelpage/internal/modules/sources"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageCookie tracks the visitor's current blob so the previous one can be
// revoked when a new fetch succeeds.
const ImageCookie = "img"

const pageName = "page"

var pageTemplate = template.Must(template.New(pageName).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>pixelpage</title>
</head>
<body>
<p>You have visited this page <span id="visits">{{.Count}}</span> times.</p>
{{if .Alert}}<p id="alert" role="alert">{{.Alert}}</p>{{end}}
<form method="post" action="/fetch">
<button id="fetch" type="submit">New image</button>
</form>
<img id="picture" src="{{.ImageURL}}" alt="">
</body>
</html>
`))

type pageData struct {
	Count    int
	ImageURL string
	Alert    string
}

// Options carries the collaborators the router needs.
type Options struct {
	Logger  *zap.Logger
	Client  *http.Client
	Store   *blobstore.Store
	Picker  sources.Picker
	Archive chan<- models.ArchiveItem
}

type server struct {
	logger  *zap.Logger
	client  *http.Client
	store   *blobstore.Store
	picker  sources.Picker
	archive chan<- models.ArchiveItem
}

// NewRouter assembles the page routes.
func NewRouter(opts Options) *gin.Engine {
	s := &server{
		logger:  opts.Logger,
		client:  opts.Client,
		store:   opts.Store,
		picker:  opts.Picker,
		archive: opts.Archive,
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", s.page)
	r.POST("/fetch", s.fetch)
	r.GET("/images/:id", s.image)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

// page reads the visit count, increments it, writes it back and renders the
// page. This is the only path that touches the visits cookie.
func (s *server) page(c *gin.Context) {
	n := counter.Read(c.Request) + 1
	counter.Write(c.Writer, n)

	c.HTML(http.StatusOK, pageName, pageData{
		Count:    n,
		ImageURL: s.currentImageURL(c.Request),
	})
}

// fetch performs one upstream fetch and re-renders the page. Failures render
// an alert and leave the image source unchanged; the counter is displayed
// but never incremented here.
func (s *server) fetch(c *gin.Context) {
	n := counter.Read(c.Request)
	src := s.picker.Pick()

	payload, err := imagefetch.Fetch(c.Request.Context(), s.client, src, s.logger)
	if err != nil {
		s.logger.Warn("image fetch failed", zap.String("url", src), zap.Error(err))
		c.HTML(http.StatusBadGateway, pageName, pageData{
			Count:    n,
			ImageURL: s.currentImageURL(c.Request),
			Alert:    err.Error(),
		})
		return
	}

	id := s.store.Put(payload)
	if prev, err := c.Request.Cookie(ImageCookie); err == nil && prev.Value != "" {
		s.store.Revoke(prev.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: ImageCookie, Value: id})

	if s.archive != nil {
		select {
		case s.archive <- models.ArchiveItem{ID: id, Source: src, Payload: payload}:
		default:
			s.logger.Warn("archive queue full, dropping", zap.String("id", id))
		}
	}

	c.HTML(http.StatusOK, pageName, pageData{
		Count:    n,
		ImageURL: "/images/" + id,
	})
}

// image serves a stored blob. Unknown or revoked ids are 404s.
func (s *server) image(c *gin.Context) {
	payload, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}

// currentImageURL resolves the visitor's last displayed image, if it is
// still retrievable.
func (s *server) currentImageURL(r *http.Request) string {
	cookie, err := r.Cookie(ImageCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	if _, ok := s.store.Get(cookie.Value); !ok {
		return ""
	}
	return "/images/" + cookie.Value
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

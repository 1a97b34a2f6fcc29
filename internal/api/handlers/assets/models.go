package assets

import (
	"path"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/integrations/objectstorage"
)

type AssetResponse struct {
	Path        string     `json:"path"`
	Name        string     `json:"name"`
	IsFolder    bool       `json:"isFolder"`
	Size        int64      `json:"size,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	PublicURL   string     `json:"publicUrl,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type DeleteRequest struct {
	Paths []string `json:"paths"`
}

func fromObject(prefix string, o objectstorage.Object, publicURL func(string) string) AssetResponse {
	p := path.Join(prefix, o.Name)
	a := AssetResponse{
		Path:     p,
		Name:     o.Name,
		IsFolder: o.IsFolder(),
	}
	if a.IsFolder {
		return a
	}
	a.Size = o.Metadata.Size
	a.ContentType = o.Metadata.ContentType
	a.PublicURL = publicURL(p)
	if !o.UpdatedAt.IsZero() {
		updated := o.UpdatedAt
		a.UpdatedAt = &updated
	}
	return a
}

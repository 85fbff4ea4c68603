package rest

import (
	"context"
	"fmt"
	"strings"

	"lifehub-assistant/internal/command/repository"
	"lifehub-assistant/internal/model"
	pkgLog "lifehub-assistant/pkg/log"
)

type implRepository struct {
	client      *Client
	externalURL string // base URL for user-facing deep links
	l           pkgLog.Logger
}

// New creates a new store repository.
func New(client *Client, externalURL string, l pkgLog.Logger) repository.StoreRepository {
	return &implRepository{
		client:      client,
		externalURL: externalURL,
		l:           l,
	}
}

func (r *implRepository) CreateRecord(ctx context.Context, opt repository.CreateRecordOptions) (model.Record, error) {
	req := CreateRecordRequest{
		Content:    buildMarkdownContent(opt),
		Visibility: "PRIVATE",
	}

	payload, err := r.client.CreateRecord(ctx, req)
	if err != nil {
		r.l.Errorf(ctx, "store repository: failed to create %s record: %v", opt.Kind, err)
		return model.Record{}, err
	}

	return r.payloadToRecord(payload, opt.Kind, opt.Title), nil
}

func (r *implRepository) GetRecord(ctx context.Context, id string) (model.Record, error) {
	payload, err := r.client.GetRecord(ctx, id)
	if err != nil {
		return model.Record{}, err
	}
	return r.payloadToRecord(payload, "", ""), nil
}

// buildMarkdownContent builds the Markdown body for a record: a title
// heading, the body, then the kind tag plus any extra tags.
func buildMarkdownContent(opt repository.CreateRecordOptions) string {
	var sb strings.Builder
	if opt.Title != "" {
		sb.WriteString("# " + opt.Title + "\n\n")
	}
	sb.WriteString(opt.Content)

	tags := append([]string{"#" + string(opt.Kind)}, opt.Tags...)
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(tags, " "))

	return sb.String()
}

// payloadToRecord converts a store API payload to the internal model.Record.
func (r *implRepository) payloadToRecord(p *RecordPayload, kind model.RecordKind, title string) model.Record {
	uid := p.UID
	// Name format is "records/{uid}" from the store v1 API
	if uid == "" && p.Name != "" {
		parts := strings.SplitN(p.Name, "/", 2)
		if len(parts) == 2 {
			uid = parts[1]
		}
	}

	url := ""
	if uid != "" && r.externalURL != "" {
		url = fmt.Sprintf("%s/r/%s", r.externalURL, uid)
	}

	return model.Record{
		ID:         p.Name,
		UID:        uid,
		Kind:       kind,
		Title:      title,
		Content:    p.Content,
		URL:        url,
		CreateTime: p.CreateTime,
		UpdateTime: p.UpdateTime,
	}
}

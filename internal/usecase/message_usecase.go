package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"
)

// 添付1件の上限（5MiB）
const MaxAttachmentSize int64 = 5 << 20

// サポートメッセージ（ユーザー→管理者、管理者は返信）
type MessageUsecase struct {
	messages repo.MessageRepository
	idGen    IDGenerator
	clock    Clock
}

func NewMessageUsecase(messages repo.MessageRepository, idGen IDGenerator, clock Clock) *MessageUsecase {
	return &MessageUsecase{
		messages: messages,
		idGen:    idGen,
		clock:    clock,
	}
}

type SendMessageInput struct {
	Message     string
	Attachments []model.Attachment
}

type AdminMessageList struct {
	Items       []model.Message `json:"items"`
	UnreadCount int64           `json:"unread_count"`
}

// 本文か添付のどちらかは必要
func (u *MessageUsecase) Send(ctx context.Context, from model.Principal, in SendMessageInput) (model.Message, error) {
	if from.ID == "" {
		return model.Message{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	text := strings.TrimSpace(in.Message)
	if text == "" && len(in.Attachments) == 0 {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "message or attachment is required")
	}
	for _, a := range in.Attachments {
		if strings.TrimSpace(a.Name) == "" || a.Size < 0 {
			return model.Message{}, NewHTTPError(http.StatusBadRequest, "invalid attachment")
		}
		if a.Size > MaxAttachmentSize {
			return model.Message{}, NewHTTPError(http.StatusBadRequest, "attachment too large")
		}
	}

	m := model.Message{
		ID:          u.idGen.NewID(),
		UserID:      from.ID,
		UserName:    from.Name,
		UserEmail:   from.Email,
		Message:     text,
		Attachments: append([]model.Attachment{}, in.Attachments...),
		Date:        u.clock.Now().UTC(),
		Read:        false,
		Replies:     []model.Reply{},
	}
	if err := u.messages.Create(ctx, m); err != nil {
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

func (u *MessageUsecase) ListMine(ctx context.Context, userID string) ([]model.Message, error) {
	if userID == "" {
		return []model.Message{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	msgs, err := u.messages.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return msgs, nil
}

// 管理者の受信箱。filterは all/unread/read（空はall）。
func (u *MessageUsecase) AdminList(ctx context.Context, filter string) (AdminMessageList, error) {
	f := repo.MessageFilter(filter)
	switch f {
	case "":
		f = repo.MessageFilterAll
	case repo.MessageFilterAll, repo.MessageFilterUnread, repo.MessageFilterRead:
	default:
		return AdminMessageList{}, NewHTTPError(http.StatusBadRequest, "invalid filter")
	}

	msgs, err := u.messages.List(ctx, f)
	if err != nil {
		return AdminMessageList{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	unread, err := u.messages.CountUnread(ctx)
	if err != nil {
		return AdminMessageList{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return AdminMessageList{Items: msgs, UnreadCount: unread}, nil
}

// 開いたら既読にする
func (u *MessageUsecase) Open(ctx context.Context, id string) (model.Message, error) {
	m, err := u.find(ctx, id)
	if err != nil {
		return model.Message{}, err
	}
	if m.Read {
		return m, nil
	}

	m.Read = true
	if err := u.messages.Update(ctx, m); err != nil {
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

// 返信は新しいものを先頭に
func (u *MessageUsecase) Reply(ctx context.Context, admin model.Principal, id string, text string) (model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "reply is required")
	}
	m, err := u.find(ctx, id)
	if err != nil {
		return model.Message{}, err
	}

	adminID := admin.ID
	if adminID == "" {
		adminID = "admin"
	}
	adminName := admin.Name
	if adminName == "" {
		adminName = "Administrator"
	}
	r := model.Reply{
		ID:        u.idGen.NewID(),
		AdminID:   adminID,
		AdminName: adminName,
		Message:   text,
		Date:      u.clock.Now().UTC(),
	}
	m.Replies = append([]model.Reply{r}, m.Replies...)
	m.Read = true

	if err := u.messages.Update(ctx, m); err != nil {
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

func (u *MessageUsecase) find(ctx context.Context, id string) (model.Message, error) {
	if strings.TrimSpace(id) == "" {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := u.messages.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Message{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

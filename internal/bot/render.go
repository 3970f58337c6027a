package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"bookingcal/internal/booking"
	"bookingcal/internal/domain"
)

const (
	actionAdd    = "add"
	actionCancel = "cancel"

	// sourceDisplayLength limits the source link shown in previews.
	sourceDisplayLength = 30
)

const welcomeText = "네이버 예약 확인 페이지 링크를 보내주세요. 예약 내용을 읽어서 Google 캘린더에 추가할 수 있는 링크를 만들어 드립니다.\n\n/mylist 추가한 예약 목록"

const usageText = "네이버 예약 상세 페이지 링크(booking.naver.com/my/bookings/...)를 보내주세요."

// previewText mirrors the confirmation dialog: empty fields are left out.
func previewText(ev domain.Event) string {
	var b strings.Builder
	b.WriteString("Google 캘린더에 추가")
	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("\n\n")
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(value)
	}
	field("제목", ev.Title)
	field("일시", ev.BookedText)
	field("장소", ev.Location)
	field("원본 링크", booking.Truncate(ev.SourceURL, sourceDisplayLength))
	return b.String()
}

func confirmKeyboard(pendingID string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "취소", CallbackData: actionCancel + ":" + pendingID},
			{Text: "추가", CallbackData: actionAdd + ":" + pendingID},
		}},
	}
}

func linkKeyboard(link string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "Google 캘린더 열기", URL: link},
		}},
	}
}

// parseCallback splits "action:id" callback data.
func parseCallback(data string) (action, id string, ok bool) {
	action, id, found := strings.Cut(data, ":")
	if !found || id == "" || (action != actionAdd && action != actionCancel) {
		return "", "", false
	}
	return action, id, true
}

// errorText turns a pipeline error into a message for the user.
func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotBookingPage):
		return usageText
	case errors.Is(err, domain.ErrNoDateTime), errors.Is(err, domain.ErrUnparseableDateTime):
		return "예약 일시를 찾지 못했습니다. 페이지 구조가 바뀌었을 수 있습니다."
	case errors.Is(err, domain.ErrDocumentNotReady):
		return "예약 페이지를 불러오지 못했습니다. 잠시 후 다시 시도해주세요."
	case errors.Is(err, domain.ErrPendingNotFound):
		return "만료된 요청입니다. 예약 링크를 다시 보내주세요."
	case errors.Is(err, domain.ErrDeclined):
		return "취소했습니다."
	case errors.Is(err, domain.ErrCalendarURLUnavailable):
		return "Google 캘린더 링크 생성에 실패했습니다."
	default:
		return "처리 중 오류가 발생했습니다."
	}
}

func historyText(events []domain.SavedEvent, loc *time.Location) string {
	if len(events) == 0 {
		return "아직 추가한 예약이 없습니다."
	}
	var b strings.Builder
	b.WriteString("추가한 예약")
	for i, e := range events {
		fmt.Fprintf(&b, "\n\n%d. %s", i+1, e.Event.Title)
		if e.Event.HasStart() {
			b.WriteString("\n")
			b.WriteString(e.Event.Start.In(loc).Format("2006-01-02 15:04"))
		}
		if e.CalendarURL != "" {
			b.WriteString("\n")
			b.WriteString(e.CalendarURL)
		}
	}
	return b.String()
}

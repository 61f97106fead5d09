package bot

import (
	"bitwise74/file-linker/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// incomingFile is the part of a message the registry cares about
type incomingFile struct {
	ID   string
	Name string
	Size int64
	Kind model.Kind
}

// pickFile finds the media attached to msg. Photos come in several sizes,
// the largest one is last.
func pickFile(msg *tgbotapi.Message) (*incomingFile, bool) {
	var f incomingFile

	switch {
	case msg.Document != nil:
		f = incomingFile{ID: msg.Document.FileID, Name: msg.Document.FileName, Size: int64(msg.Document.FileSize)}
	case msg.Video != nil:
		f = incomingFile{ID: msg.Video.FileID, Name: msg.Video.FileName, Size: int64(msg.Video.FileSize)}
	case msg.Audio != nil:
		f = incomingFile{ID: msg.Audio.FileID, Name: msg.Audio.FileName, Size: int64(msg.Audio.FileSize)}
	case msg.Voice != nil:
		f = incomingFile{ID: msg.Voice.FileID, Size: int64(msg.Voice.FileSize)}
	case msg.Animation != nil:
		f = incomingFile{ID: msg.Animation.FileID, Name: msg.Animation.FileName, Size: int64(msg.Animation.FileSize)}
	case len(msg.Photo) > 0:
		p := msg.Photo[len(msg.Photo)-1]
		f = incomingFile{ID: p.FileID, Size: int64(p.FileSize)}
	default:
		return nil, false
	}

	if f.Name == "" {
		f.Name = fallbackName(msg)
	}
	f.Kind = kindOf(msg)

	return &f, true
}

func fallbackName(msg *tgbotapi.Message) string {
	switch {
	case msg.Video != nil:
		return "video.mp4"
	case msg.Animation != nil:
		return "animation.mp4"
	case msg.Audio != nil:
		return "audio.mp3"
	case msg.Voice != nil:
		return "voice.ogg"
	case len(msg.Photo) > 0:
		return "photo.jpg"
	default:
		return "file.bin"
	}
}

// kindOf checks in a different order than pickFile: Telegram sets both
// Document and Animation for GIFs and those are reported as documents.
func kindOf(msg *tgbotapi.Message) model.Kind {
	switch {
	case msg.Document != nil:
		return model.KindDocument
	case msg.Video != nil:
		return model.KindVideo
	case len(msg.Photo) > 0:
		return model.KindPhoto
	case msg.Audio != nil:
		return model.KindAudio
	case msg.Voice != nil:
		return model.KindVoice
	case msg.Animation != nil:
		return model.KindAnimation
	default:
		return model.KindFile
	}
}

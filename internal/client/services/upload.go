package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/imagedrop/internal/client/client"
	"github.com/dmitrijs2005/imagedrop/internal/client/models"
	"github.com/dmitrijs2005/imagedrop/internal/common"
)

// FileLoaded starts the upload path for a file read by the dropper.
func (a *Application) FileLoaded(name, content string) error {
	ctx := a.context()

	if !a.allowProtected() {
		return nil
	}

	file := models.LoadedFile{Name: name, Content: content}
	if limit := a.opts.MaxFileSizeKb; limit > 0 && file.SizeKb() > limit {
		a.log.Debug(ctx, "file rejected by size", "file", name, "kb", file.SizeKb())
		a.presenter.ShowWarning(fmt.Sprintf(MsgFileTooBig, formatKb(limit)))
		return nil
	}

	if a.opts.UploadMode == UploadRaw {
		a.uploadRaw(ctx, name, content)
		return nil
	}

	a.wg.Add(1)
	a.scaler.Scale(ctx, content, a.opts.ThumbnailWidth, a.opts.ThumbnailHeight, func(thumb string, err error) {
		defer a.wg.Done()
		if err != nil {
			a.Error(name, err.Error())
			return
		}
		a.uploadFile(ctx, name, content, thumb)
	})
	return nil
}

func (a *Application) uploadFile(ctx context.Context, name, image, thumb string) {
	opts := a.presenter.GetSubmitOptions()
	req := models.UploadRequest{
		FileName:    name,
		PassCode:    opts.PassCode,
		ForceUpload: opts.IsForceUpload,
		Image:       image,
		Thumbnail:   thumb,
	}

	body, err := req.Body()
	if err != nil {
		a.presenter.ShowError(MsgUploadError + err.Error())
		return
	}

	headers := []client.Header{
		{Name: common.HeaderPassCode, Value: common.EncodeURIComponent(req.PassCode)},
		{Name: common.HeaderFileName, Value: common.EncodeURIComponent(req.FileName)},
		{Name: common.HeaderForceUpload, Value: strconv.FormatBool(req.ForceUpload)},
		{Name: common.HeaderContentType, Value: common.UploadContentType},
	}

	a.send(ctx, common.EndpointUpload, body, headers, a.uploadReady)
}

func (a *Application) uploadReady(err error, data client.Data) {
	switch {
	case err != nil:
		a.presenter.ShowError(MsgUploadError + err.Error())
	case data.IsFalsy():
		a.presenter.ShowError(MsgSomethingWrong)
	default:
		var meta models.ImageMeta
		if err := data.Decode(&meta); err != nil {
			a.presenter.ShowError(MsgUploadError + err.Error())
			return
		}
		a.presenter.ShowImageOutput(meta)
	}
}

// uploadRaw sends the data URL itself; the server answers with the
// URI-encoded address of the stored image.
func (a *Application) uploadRaw(ctx context.Context, name, image string) {
	headers := []client.Header{
		{Name: common.HeaderPassCode, Value: common.EncodeURIComponent(a.presenter.GetPassCode())},
		{Name: common.HeaderFileName, Value: common.EncodeURIComponent(name)},
		{Name: common.HeaderContentType, Value: common.UploadContentType},
	}

	a.send(ctx, common.EndpointUpload, []byte(image), headers, func(err error, data client.Data) {
		switch {
		case err != nil:
			a.presenter.ShowError(MsgUploadError + err.Error())
		case data.IsFalsy():
			a.presenter.ShowError(MsgSomethingWrong)
		default:
			url := data.Text()
			if decoded, err := common.DecodeURIComponent(url); err == nil {
				url = decoded
			}
			a.presenter.ShowImageOutput(models.ImageMeta{Name: name, URL: url})
		}
	})
}

package services

import (
	"context"

	"github.com/dmitrijs2005/imagedrop/internal/client/client"
	"github.com/dmitrijs2005/imagedrop/internal/client/models"
	"github.com/dmitrijs2005/imagedrop/internal/common"
)

// SearchImages replaces the shown results with the server's matches for phrase.
func (a *Application) SearchImages(ctx context.Context, phrase string) {
	headers := []client.Header{
		{Name: common.HeaderSearchPhrase, Value: common.EncodeURIComponent(phrase)},
	}

	a.send(ctx, common.EndpointSearch, nil, headers, func(err error, data client.Data) {
		if err != nil {
			a.presenter.ShowError(MsgSearchError + err.Error())
			return
		}
		if data.IsFalsy() {
			a.showImages(nil)
			return
		}

		var list []models.ImageMeta
		if err := data.Decode(&list); err != nil {
			a.presenter.ShowError(MsgSearchError + err.Error())
			return
		}
		a.showImages(list)
	})
}

// ValidatePassCode asks the server whether code is valid and unlocks uploads
// if it is.
func (a *Application) ValidatePassCode(ctx context.Context, code string) {
	headers := []client.Header{
		{Name: common.HeaderPassCode, Value: common.EncodeURIComponent(code)},
	}

	a.send(ctx, common.EndpointValidate, nil, headers, func(err error, data client.Data) {
		if err != nil {
			a.presenter.ShowError(MsgValidationError + err.Error())
			return
		}

		valid := false
		if !data.IsFalsy() {
			v, err := data.Bool()
			if err != nil {
				a.presenter.ShowError(MsgValidationError + err.Error())
				return
			}
			valid = v
		}

		if !valid {
			a.presenter.ShowWarning(MsgWrongPassCode)
			return
		}

		a.unlock()
		a.log.Info(ctx, "pass code accepted")
		a.presenter.ShowUploadControls()
	})
}

// DeleteImage deletes fileName on the server and, on success, removes the
// message box that showed it.
func (a *Application) DeleteImage(ctx context.Context, fileName, messageBoxID string) {
	if !a.allowProtected() {
		return
	}

	opts := a.presenter.GetSubmitOptions()
	headers := []client.Header{
		{Name: common.HeaderPassCode, Value: common.EncodeURIComponent(opts.PassCode)},
		{Name: common.HeaderFileName, Value: common.EncodeURIComponent(fileName)},
	}

	a.send(ctx, common.EndpointDelete, nil, headers, func(err error, data client.Data) {
		if err != nil {
			a.presenter.ShowError(MsgDeleteError + err.Error())
			return
		}
		a.presenter.ShowInfo(data.Text())
		a.presenter.RemoveMessageBox(messageBoxID)
	})
}

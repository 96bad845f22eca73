package blogservice

import (
	"github.com/sushihentaime/blogsite/internal/common"
)

func validatePostInput(v *common.Validator, in PostInput) {
	v.Check(common.NotBlank(in.Title), "title", "must be provided")
	v.Check(len(in.Title) <= 250, "title", "must not be more than 250 bytes long")
	v.Check(common.NotBlank(in.Subtitle), "subtitle", "must be provided")
	v.Check(len(in.Subtitle) <= 250, "subtitle", "must not be more than 250 bytes long")
	v.Check(common.NotBlank(in.ImgURL), "img_url", "must be provided")
	v.Check(common.ValidURL(in.ImgURL), "img_url", "must be a valid URL")
	v.Check(common.NotBlank(in.Body), "body", "must be provided")
}

func validateComment(v *common.Validator, text string) {
	v.Check(common.NotBlank(text), "comment", "must be provided")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

package application

import "github.com/dfryer1193/photogram/images/domain"

// Messages returned to clients. They are part of the API contract.
const (
	MsgLogIn             = "You need to log in"
	MsgUnauthorized      = "Unauthorized"
	MsgImageNotFound     = "Image Not Found"
	MsgCommentNotFound   = "Comment Not Found"
	MsgCantLikeImage     = "Can't Like Image"
	MsgCantCreateComment = "Can't create the comment"
	MsgCantDeleteComment = "Can't Delete Comment"
	MsgCantSaveImage     = "Can't Save Image"
	MsgCantCreateImage   = "Can't Create Image"
)

// Result is the outcome shared by every mutation.
// Error is empty exactly when OK is true.
type Result struct {
	OK    bool
	Error string
}

func succeed() Result {
	return Result{OK: true}
}

func fail(msg string) Result {
	return Result{OK: false, Error: msg}
}

type ImageResult struct {
	Result
	Image *domain.Image
}

type CommentResult struct {
	Result
	Comment *domain.Comment
}

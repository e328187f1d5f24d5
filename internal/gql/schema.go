package gql

import (
	"context"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

const schemaSDL = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time

	type Query {
		image(imageId: Int!): Image
		me: User
		notifications(limit: Int): [Notification!]!
	}

	type Mutation {
		likeImage(imageId: Int!): LikeImageResponse!
		unlikeImage(imageId: Int!): UnlikeImageResponse!
		addComment(imageId: Int!, message: String!): AddCommentResponse!
		deleteComment(imageId: Int!, commentId: Int!): DeleteCommentResponse!
		editImage(imageId: Int!, caption: String, location: String): EditImageResponse!
		deleteImage(imageId: Int!): DeleteImageResponse!
		uploadImage(fileUrl: String!, caption: String!, location: String): UploadImageResponse!
	}

	type Image {
		id: Int!
		file: String!
		caption: String!
		location: String!
		creatorId: Int!
		likeCount: Int!
		commentCount: Int!
		createdAt: Time!
		updatedAt: Time!
	}

	type Comment {
		id: Int!
		message: String!
		messageHtml: String!
		imageId: Int!
		creatorId: Int!
		createdAt: Time!
	}

	type User {
		id: Int!
		username: String!
	}

	type Notification {
		id: Int!
		actorId: Int!
		verb: String!
		imageId: Int
		createdAt: Time!
	}

	type LikeImageResponse {
		ok: Boolean!
		error: String
	}

	type UnlikeImageResponse {
		ok: Boolean!
		error: String
	}

	type AddCommentResponse {
		ok: Boolean!
		error: String
		comment: Comment
	}

	type DeleteCommentResponse {
		ok: Boolean!
		error: String
	}

	type EditImageResponse {
		ok: Boolean!
		error: String
		image: Image
	}

	type DeleteImageResponse {
		ok: Boolean!
		error: String
	}

	type UploadImageResponse {
		ok: Boolean!
		error: String
		image: Image
	}
`

const maxQueryDepth = 10

// NewSchema parses the API schema against r. It panics if r does not satisfy the schema.
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{}),
	)
}

// panicLogger reports resolver panics through zerolog; the panic itself is
// returned to the client as a field error.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	log.Error().Str("panic", fmt.Sprint(value)).Msg("GraphQL resolver panicked")
}

package requestdata

import (
  "context"
  "github.com/google/uuid"
)

var requestDataKey = struct{}{}

// RequestData carries the acting user through a request. Services read it from
// the context explicitly; an absent record or a nil UserID means the caller is
// anonymous.
type RequestData struct {
  TokenString  string
  RefreshToken string
  UserID       uuid.UUID
  Username     string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// ActingUserID returns the authenticated user id, or uuid.Nil for anonymous
// callers.
func ActingUserID(ctx context.Context) uuid.UUID {
  rd := GetRequestData(ctx)
  if rd == nil {
    return uuid.Nil
  }
  return rd.UserID
}
